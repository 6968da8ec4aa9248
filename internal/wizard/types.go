package wizard

// State tracks which screen the wizard is on.
type State int

const (
	StateWelcome State = iota
	StateConnectionDetails
	StateSummary
	StateDone
	StateAborted
)

// Field indexes into the wizard's text inputs.
const (
	fieldEnvironment = iota
	fieldURI
	fieldUsername
	fieldPassword
	fieldDatabase
	fieldCount
)

// Result is the collected connection configuration the wizard hands back to
// the init command.
type Result struct {
	Environment string
	URI         string
	Username    string
	Password    string
	Database    string
}
