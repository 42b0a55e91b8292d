package agent

// Names of the built-in specialists.
const (
	NameDataAnalysis = "data_analysis"
	NameFollowUp     = "followup"
	NameReporting    = "reporting"
	NameQualityCheck = "quality_check"
	NameBenchmarking = "benchmarking"
	NameKPI          = "kpi"
	NameCritique     = "critique"
	NameSlides       = "slides"
)

// DataAnalysis describes the events statistics specialist.
func DataAnalysis() Config {
	return Config{
		Name:         NameDataAnalysis,
		DisplayName:  "Data Analysis Agent",
		Description:  "Analyze event data and produce analytical reports",
		SystemPrompt: dataAnalysisPrompt,
		Temperature:  0.3,
		CallNote:     "Generating analysis...",
		DoneNote:     "Analysis completed successfully",
		Prepare:      PrepareDataAnalysis,
	}
}

// FollowUp describes the missing-information specialist.
func FollowUp() Config {
	return Config{
		Name:         NameFollowUp,
		DisplayName:  "Follow-up Agent",
		Description:  "Identify missing information and draft follow-up messages",
		SystemPrompt: followUpPrompt,
		Temperature:  0.5,
		CallNote:     "Drafting follow-up messages...",
		DoneNote:     "Follow-up drafts ready",
		Prepare:      PrepareFollowUp,
	}
}

// Reporting describes the committee reporting specialist.
func Reporting() Config {
	return Config{
		Name:         NameReporting,
		DisplayName:  "Reporting Agent",
		Description:  "Compile results and prepare committee reports",
		SystemPrompt: reportingPrompt,
		Temperature:  0.4,
		CallNote:     "Preparing report...",
		DoneNote:     "Report prepared successfully",
		Prepare:      PrepareReporting,
	}
}

// QualityCheck describes the data quality specialist.
func QualityCheck() Config {
	return Config{
		Name:         NameQualityCheck,
		DisplayName:  "Quality Check Agent",
		Description:  "Verify data completeness and quality",
		SystemPrompt: qualityCheckPrompt,
		Temperature:  0.2,
		CallNote:     "Analyzing quality results...",
		DoneNote:     "Quality check completed",
		Prepare:      PrepareQualityCheck,
	}
}

// Benchmarking describes the international comparison specialist.
func Benchmarking() Config {
	return Config{
		Name:         NameBenchmarking,
		DisplayName:  "Benchmarking Agent",
		Description:  "Conduct comparative research and analyze international experiences",
		SystemPrompt: benchmarkingPrompt,
		Temperature:  0.5,
		CallNote:     "Generating comparative analysis...",
		DoneNote:     "Benchmarking analysis completed",
		Prepare:      PrepareBenchmarking,
	}
}

// KPI describes the indicator recommendation specialist.
func KPI() Config {
	return Config{
		Name:         NameKPI,
		DisplayName:  "KPI Agent",
		Description:  "Recommend KPIs and define measurement methods",
		SystemPrompt: kpiPrompt,
		Temperature:  0.4,
		CallNote:     "Generating KPI recommendations...",
		DoneNote:     "KPI recommendations ready",
		Prepare:      PrepareKPI,
	}
}

// Critique describes the reviewer. It has no preparation step; callers
// frame the material with ReviewRequest.
func Critique() Config {
	return Config{
		Name:         NameCritique,
		DisplayName:  "Critique Agent",
		Description:  "Review outputs and provide constructive feedback",
		SystemPrompt: critiquePrompt,
		Temperature:  0.4,
		CallNote:     "Reviewing content...",
		DoneNote:     "Review completed",
	}
}

// Slides describes the presentation formatter.
func Slides() Config {
	return Config{
		Name:         NameSlides,
		DisplayName:  "Content Preparation Agent",
		Description:  "Format content for presentations",
		SystemPrompt: slidesPrompt,
		Temperature:  0.5,
		CallNote:     "Formatting slides...",
		DoneNote:     "Slides prepared successfully",
	}
}

// Catalog returns every built-in specialist config.
func Catalog() []Config {
	return []Config{
		DataAnalysis(), FollowUp(), Reporting(), QualityCheck(),
		Benchmarking(), KPI(), Critique(), Slides(),
	}
}
