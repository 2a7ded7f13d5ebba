package internal

import (
	"bytes"
	"fmt"
	"os/user"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wal-g/seqdata/internal/limiters"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/seqfile"
	"github.com/wal-g/seqdata/pkg/storages/fs"
	"github.com/wal-g/seqdata/pkg/storages/storage"
	"github.com/wal-g/seqdata/utility"
	"github.com/wal-g/tracelog"
)

const (
	MagicSetting            = "SEQDATA_MAGIC"
	HeaderSizeSetting       = "SEQDATA_HEADER_SIZE"
	ReadBufferSizeSetting   = "SEQDATA_READ_BUFFER_SIZE"
	LogLevelSetting         = "SEQDATA_LOG_LEVEL"
	FilePrefixSetting       = "SEQDATA_FILE_PREFIX"
	FetchMaxRetriesSetting  = "SEQDATA_FETCH_MAX_RETRIES"
	NetworkRateLimitSetting = "SEQDATA_NETWORK_RATE_LIMIT"

	defaultConfigName = ".seqdata"
)

var (
	CfgFile string

	defaultConfigValues = map[string]string{
		MagicSetting:            "",
		HeaderSizeSetting:       "0",
		ReadBufferSizeSetting:   strconv.Itoa(seqfile.DefaultReadBufferSize),
		LogLevelSetting:         tracelog.NormalLogLevel,
		FilePrefixSetting:       "",
		FetchMaxRetriesSetting:  "3",
		NetworkRateLimitSetting: "0",
	}

	AllowedSettings = map[string]bool{
		MagicSetting:            true,
		HeaderSizeSetting:       true,
		ReadBufferSizeSetting:   true,
		LogLevelSetting:         true,
		FilePrefixSetting:       true,
		FetchMaxRetriesSetting:  true,
		NetworkRateLimitSetting: true,
	}

	// RequiredSettings are checked only by commands that talk to storage.
	RequiredSettings = map[string]bool{
		FilePrefixSetting: true,
	}
)

func isAllowedSetting(setting string, AllowedSettings map[string]bool) (exists bool) {
	_, exists = AllowedSettings[setting]
	return
}

// GetSetting extract setting by key if key is set, return empty string otherwise
func GetSetting(key string) (value string, ok bool) {
	if viper.IsSet(key) {
		return viper.GetString(key), true
	}
	return "", false
}

func getNonNegativeIntSetting(key string) (int, error) {
	value := viper.GetString(key)
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, NewInvalidSettingError(key, value, err)
	}
	if parsed < 0 {
		return 0, NewInvalidSettingError(key, value, errors.New("must not be negative"))
	}
	return parsed, nil
}

// Configure applies the log level and dumps the effective settings in DEVEL mode.
func Configure() {
	err := ConfigureLogging()
	if err != nil {
		tracelog.ErrorLogger.Println("Failed to configure logging.")
		tracelog.ErrorLogger.FatalError(err)
	}

	var buff bytes.Buffer
	buff.WriteString("--- COMPILED SETTINGS ---\n")
	keys := make([]string, 0, len(AllowedSettings))
	for k := range AllowedSettings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buff, "\t%s=%s\n", k, viper.GetString(k))
	}
	tracelog.DebugLogger.Print(buff.String())
}

func ConfigureLogging() error {
	if logLevel, ok := GetSetting(LogLevelSetting); ok {
		return tracelog.UpdateLogLevel(logLevel)
	}
	return nil
}

// ConfigureFormat builds the container format from SEQDATA_MAGIC and SEQDATA_HEADER_SIZE.
func ConfigureFormat() (seqdata.Format, error) {
	magicStr := viper.GetString(MagicSetting)
	magic, err := utility.DecodeHex(magicStr)
	if err != nil {
		return seqdata.Format{}, NewInvalidSettingError(MagicSetting, magicStr, err)
	}
	headerSize, err := getNonNegativeIntSetting(HeaderSizeSetting)
	if err != nil {
		return seqdata.Format{}, err
	}
	return seqdata.Format{Magic: magic, HeaderSize: headerSize}, nil
}

func GetReadBufferSize() (int, error) {
	size, err := getNonNegativeIntSetting(ReadBufferSizeSetting)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		return seqfile.DefaultReadBufferSize, nil
	}
	return size, nil
}

func GetFetchMaxRetries() (int, error) {
	return getNonNegativeIntSetting(FetchMaxRetriesSetting)
}

// ConfigureFolder opens the folder that push and fetch work against.
func ConfigureFolder() (storage.Folder, error) {
	prefix, ok := GetSetting(FilePrefixSetting)
	if !ok || prefix == "" {
		return nil, NewUnsetEnvVarError([]string{FilePrefixSetting})
	}
	folder, err := fs.ConfigureFolder(prefix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to configure folder")
	}
	netLimit, err := getNonNegativeIntSetting(NetworkRateLimitSetting)
	if err != nil {
		return nil, err
	}
	if netLimit == 0 {
		return folder, nil
	}
	return limiters.NewFolder(folder, limiters.NewNetworkLimiter(int64(netLimit))), nil
}

func AddConfigFlags(Cmd *cobra.Command, hiddenCfgFlagAnnotation string) {
	cfgFlags := &pflag.FlagSet{}
	for k := range AllowedSettings {
		flagName := toFlagName(k)
		flagUsage := ""
		if RequiredSettings[k] {
			flagUsage = "Required for push and fetch, can be set though this flag or " + k + " variable"
		}

		cfgFlags.String(flagName, "", flagUsage)
		_ = viper.BindPFlag(k, cfgFlags.Lookup(flagName))
	}
	cfgFlags.VisitAll(func(f *pflag.Flag) {
		if f.Annotations == nil {
			f.Annotations = map[string][]string{}
		}
		f.Annotations[hiddenCfgFlagAnnotation] = []string{"true"}
	})
	Cmd.PersistentFlags().AddFlagSet(cfgFlags)
}

// InitConfig reads config file and ENV variables if set.
func InitConfig() {
	var globalViper = viper.GetViper()
	globalViper.AutomaticEnv() // read in environment variables that match
	SetDefaultValues(globalViper)
	ReadConfigFromFile(globalViper, CfgFile)
	CheckAllowedSettings(globalViper)
}

// ReadConfigFromFile read config to the viper instance
func ReadConfigFromFile(config *viper.Viper, configFile string) {
	if configFile != "" {
		config.SetConfigFile(configFile)
	} else {
		usr, err := user.Current()
		tracelog.ErrorLogger.FatalOnError(err)

		// Search config in home directory with name ".seqdata" (without extension).
		config.AddConfigPath(usr.HomeDir)
		config.SetConfigName(defaultConfigName)
	}

	err := config.ReadInConfig()
	if err == nil {
		tracelog.DebugLogger.Println("Using config file:", config.ConfigFileUsed())
	} else if config.ConfigFileUsed() != "" {
		// Config file is found, but parsing failed
		tracelog.WarningLogger.Printf("Failed to parse config file %s. %s.", config.ConfigFileUsed(), err)
	}
}

// SetDefaultValues set default settings to the viper instance
func SetDefaultValues(config *viper.Viper) {
	for setting, value := range defaultConfigValues {
		config.SetDefault(setting, value)
	}
}

// CheckAllowedSettings warnings if a viper instance's setting not allowed
func CheckAllowedSettings(config *viper.Viper) {
	for k := range config.AllSettings() {
		k = strings.ToUpper(k)
		if !isAllowedSetting(k, AllowedSettings) {
			tracelog.WarningLogger.Println(k + " is unknown")
		}
	}
}

func AssertRequiredSettingsSet() error {
	for setting, required := range RequiredSettings {
		value, isSet := GetSetting(setting)
		if required && (!isSet || value == "") {
			return errors.New("Required variable " + setting + " is not set. You can set is using --" +
				toFlagName(setting) + " flag or variable " + setting)
		}
	}
	return nil
}

func toFlagName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}
