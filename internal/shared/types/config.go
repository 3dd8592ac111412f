package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile         string   `json:"profile" yaml:"profile" toml:"profile"`
	Region          string   `json:"region" yaml:"region" toml:"region"`
	ReportName      string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType      []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir             string   `json:"dir" yaml:"dir" toml:"dir"`
	Months          int      `json:"months" yaml:"months" toml:"months"`
	Schedule        string   `json:"schedule" yaml:"schedule" toml:"schedule"`
	AccessKeyID     string   `json:"access_key_id" yaml:"access_key_id" toml:"access_key_id"`
	SecretAccessKey string   `json:"secret_access_key" yaml:"secret_access_key" toml:"secret_access_key"`
	SessionToken    string   `json:"session_token" yaml:"session_token" toml:"session_token"`
}
