package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Output        string `mapstructure:"output"`
	JSONIndent    string `mapstructure:"json_indent"`
	TableLocalIDs bool   `mapstructure:"table_local_ids"`
	Workers       int    `mapstructure:"workers"`
	GlamourStyle  string `mapstructure:"glamour_style"`
	Wrap          int    `mapstructure:"wrap"`
	ColorTitle    string `mapstructure:"color_title"`
	ColorBorder   string `mapstructure:"color_border"`
	ColorFocus    string `mapstructure:"color_focus"`
	Verbose       bool   `mapstructure:"verbose"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("output", "print")
	viper.SetDefault("json_indent", "  ")
	viper.SetDefault("table_local_ids", false)
	viper.SetDefault("workers", runtime.NumCPU())
	viper.SetDefault("glamour_style", "auto")
	viper.SetDefault("wrap", 100)
	viper.SetDefault("color_title", "36")  // Cyan
	viper.SetDefault("color_border", "90") // Gray
	viper.SetDefault("color_focus", "32")  // Green
	viper.SetDefault("verbose", false)

	viper.SetConfigName("adfmd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "adfmd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("ADFMD")
	viper.AutomaticEnv()

	// Missing or malformed config falls back to defaults
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// ConfigFile returns the config file in use, or "" when running on defaults
func ConfigFile() string {
	return viper.ConfigFileUsed()
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetJSONIndent returns the indent used for ADF JSON output. Empty means compact.
func GetJSONIndent() string {
	return viper.GetString("json_indent")
}

// GetTableLocalIDs reports whether tables parsed from Markdown get a localId
func GetTableLocalIDs() bool {
	return viper.GetBool("table_local_ids")
}

// GetWorkers returns the batch concurrency, never less than 1
func GetWorkers() int {
	if n := viper.GetInt("workers"); n > 0 {
		return n
	}
	return 1
}

// GetGlamourStyle returns the terminal rendering style
func GetGlamourStyle() string {
	return viper.GetString("glamour_style")
}

// GetWrap returns the terminal word wrap width
func GetWrap() int {
	return viper.GetInt("wrap")
}

// GetColorTitle returns ANSI color code for titles
func GetColorTitle() string {
	return viper.GetString("color_title")
}

// GetColorBorder returns ANSI color code for pane borders
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorFocus returns ANSI color code for the focused pane
func GetColorFocus() string {
	return viper.GetString("color_focus")
}

// IsVerbose returns whether debug logging is enabled
func IsVerbose() bool {
	return viper.GetBool("verbose")
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetVerbose sets verbose logging at runtime
func SetVerbose(v bool) {
	viper.Set("verbose", v)
	C.Verbose = v
}

// SetWorkers sets batch concurrency at runtime
func SetWorkers(n int) {
	viper.Set("workers", n)
	C.Workers = n
}
