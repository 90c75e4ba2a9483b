package intelligence

const parseImageSystemPrompt = `You read project schedule (Gantt chart) images and transcribe them into JSON.
Output ONLY a JSON object, with no prose and no markdown.`

const parseImageUserPrompt = `Analyze this project schedule / Gantt chart image.
Extract the timeline data into this JSON structure:

{
  "title": "chart title",
  "startDate": "YYYY-MM-DD",
  "endDate": "YYYY-MM-DD",
  "rows": [{"id": "milestones", "label": "Milestones", "height": 100}],
  "items": [
    {"id": "m1", "rowId": "milestones", "label": "Kickoff", "date": "YYYY-MM-DD", "type": "milestone", "isCritical": false},
    {"id": "s1", "rowId": "samples", "label": "Build", "date": "YYYY-MM-DD", "endDate": "YYYY-MM-DD", "type": "range"}
  ]
}

Rules:
- Rows usually include phases such as "Milestones", "Development Plan", "Sample Plan", "Verification Plan".
- Every item's rowId must match one of the row ids.
- A single point (diamond icon) is a "milestone". A bar spanning a duration is a "range" and needs endDate.
- Set isCritical to true when the item has a red star or another important marker.
- Take the start and end of the whole timeline from the header months and years.
- Format every date as YYYY-MM-DD.`

const breakdownSystemPrompt = `You are a project planner who writes work breakdown structures.
Output ONLY a JSON object, with no prose and no markdown.`

const breakdownUserPrompt = `Create a detailed Work Breakdown Structure (WBS) for the project phase: %q.

Context - current high level items in this phase:
%s

Requirements:
1. Generate specific, actionable sub-tasks (Level 1).
2. Where appropriate, break Level 1 tasks into Level 2 sub-tasks.
3. Assign realistic start and end dates for each task. These dates MUST align roughly with the high level items in the context.
4. Format dates as YYYY-MM-DD.

Respond with:
{
  "tasks": [
    {
      "id": "t1",
      "taskName": "...",
      "startDate": "YYYY-MM-DD",
      "endDate": "YYYY-MM-DD",
      "duration": "5 days",
      "owner": "role",
      "status": "Pending",
      "subTasks": [ ...same fields... ]
    }
  ]
}

status is one of "Pending", "In Progress", "Done".`
