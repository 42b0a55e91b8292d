package orchestrator

const eventsGuidance = `## Welcome to the National Events Planning Oversight System

I am the Coordination Agent. I can help you with:

### Data Analysis
Analyze event data from implementing entities and produce statistical reports.
**Example:** "Analyze the event data we received"

### Follow-up & Communication
Identify missing information and draft follow-up messages to entities.
**Example:** "What information is missing from the Ministry of Culture?"

### Committee Reporting
Compile results and prepare reports for the oversight committee.
**Example:** "Prepare a status report for the committee"

### Quality Assurance
Verify data completeness and quality.
**Example:** "Check data quality for received submissions"

---
How can I assist you today?`

const celebrationsGuidance = `## Welcome to the Celebration Strategic Planning System

I am the Strategic Planning Agent. I can help you with:

### International Benchmarking
Learn from international celebrations such as St. Petersburg, Rome or Barcelona.
**Example:** "Compare our plans with similar international experiences"

### Key Performance Indicators
Get recommendations for indicators that measure the success of the celebration.
**Example:** "Which KPIs should we use to track delivery?"

### Review and Critique
Review any previous answer and get constructive feedback.
**Example:** "Review the previous analysis and give feedback"

### Presentation Content
Turn any content into professional presentation slides.
**Example:** "Convert the previous answer into a presentation"

---
How can I assist you with strategic planning today?`
