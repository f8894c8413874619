package constants

const (
	// Streak and consistency windows
	MaxStreakLookback = 365
	ConsistencyWindow = 7

	// Consistency bands (percent thresholds)
	BandStrongThreshold = 80.0
	BandOKThreshold     = 50.0

	// Badge thresholds
	BadgeEnergyWorkouts   = 3
	BadgeEnergyWindow     = 7
	BadgeFocusedTasks     = 10
	BadgeUnstoppableDays  = 7
	BadgeGardenerMinScore = 50.0

	// AI fallbacks
	AnalysisUnavailable     = "Could not analyse this entry right now. Please try again later."
	AnalysisNotConfigured   = "Configure an AI API key to enable journal analysis."
	ManualSubtaskSuggestion = "Add subtask manually"
)
