package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Profile    string
	Region     string
	ReportName string
	ReportType []string
	Dir        string
	Months     int
	Schedule   string
	NoColor    bool
	Debug      bool
}
