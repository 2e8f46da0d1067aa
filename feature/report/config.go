package report

// Config controls the run log and the output workbook.
type Config struct {
	// Echo copies every narrated line to the console.
	Echo bool `mapstructure:"echo" default:"true"`
	// Workbook enables the output workbook.
	Workbook bool `mapstructure:"workbook" default:"true"`
	// Differences adds the differences (or aggregate) sheet to the workbook.
	Differences bool `mapstructure:"differences" default:"true"`
	// Upload pushes the workbook and the run log to the bucket after the run.
	Upload bool `mapstructure:"upload" default:"false"`
	// TimeFormat is the layout of the timestamp in section headers.
	TimeFormat string `mapstructure:"time_format" default:"2006-01-02 15:04:05.000000"`
	// Messages overrides outcome messages by outcome name.
	Messages map[string]string `mapstructure:"messages"`
}
