package bot

// Wizard steps. An empty step means the chat has no booking in progress.
const (
	StepSpaceDetails = "space_details"
	StepFrequency    = "frequency"
	StepConfirmation = "confirmation"
)

const (
	BtnBack     = "⬅️ Back"
	BtnSchedule = "📅 Schedule Appointment"
)

const (
	CallbackAddOnPrefix = "addon:"
	CallbackAddOnsDone  = "addons:done"
)

// Input bounds of the space details step.
const (
	MinBedrooms  = 1
	MaxBedrooms  = 6
	MinBathrooms = 1
	MaxBathrooms = 5
	MinHalfBaths = 0
	MaxHalfBaths = 3
	MinSqFt      = 200
	MaxSqFt      = 5000
	SqFtStep     = 50
)
