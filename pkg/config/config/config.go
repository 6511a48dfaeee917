package config

import (
	"bytes"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/cozy/exavatar/pkg/avatar"
	"github.com/cozy/exavatar/pkg/cache"
	"github.com/cozy/exavatar/pkg/color"
	build "github.com/cozy/exavatar/pkg/config"
	"github.com/cozy/exavatar/pkg/logger"
	"github.com/cozy/exavatar/pkg/store"
	"github.com/cozy/exavatar/pkg/utils"
	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// Filename is the default configuration filename that exavatar
// search for
const Filename = "exavatar"

// Paths is the list of directories used to search for a
// configuration file
var Paths = []string{
	".",
	".exavatar",
	"$HOME/.exavatar",
	"$HOME/.config/exavatar",
	"$XDG_CONFIG_HOME/exavatar",
	"/etc/exavatar",
}

const (
	// EnvProduction enables the long-lived cache headers and the remote
	// assets by default.
	EnvProduction = "production"
	// EnvDevelopment is the default environment.
	EnvDevelopment = "development"
)

// ProductionAssetsURL is the default asset store in production: the raw
// files of the avatars repository.
const ProductionAssetsURL = "https://raw.githubusercontent.com/gitchaell/exavatar/refs/heads/main/avatars/"

// DevelopmentAssetsURL is the default asset store in development.
const DevelopmentAssetsURL = "file://./avatars"

var (
	config *Config
)

var log = logger.WithNamespace("config")

// Config contains the configuration values of the application
type Config struct {
	Host string
	Port int

	AdminHost string
	AdminPort int

	Environment string

	Log    Log
	Assets Assets
	Cache  Cache
	Avatar Avatar
}

// Log contains the configuration of the logger.
type Log struct {
	Level  string
	Format string
}

// Assets contains the configuration of the asset store.
type Assets struct {
	URL     *url.URL
	Timeout time.Duration
	S3      store.S3Options
	Swift   store.SwiftOptions
}

// Cache contains the configuration of the cache of the avatars.
type Cache struct {
	Redis redis.UniversalClient
	Size  int
	TTL   time.Duration
}

// Avatar contains the rules for the resolution of the request parameters.
type Avatar struct {
	TextLength   int
	Lenient      bool
	DefaultColor *color.Color
}

// ServerAddr returns the address on which the public server is run
func ServerAddr() string {
	return net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
}

// AdminServerAddr returns the address on which the administration is listening
func AdminServerAddr() string {
	return net.JoinHostPort(config.AdminHost, strconv.Itoa(config.AdminPort))
}

// GetConfig returns the configured instance of Config
func GetConfig() *Config {
	return config
}

// IsProduction returns true when the environment is production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// StoreOptions returns the options to build the asset store.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		URL:   c.Assets.URL,
		S3:    c.Assets.S3,
		Swift: c.Assets.Swift,
	}
}

// CacheOptions returns the options of the in-memory cache.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{Size: c.Cache.Size, TTL: c.Cache.TTL}
}

// AvatarOptions returns the options used to resolve the avatar
// configurations.
func (c *Config) AvatarOptions() avatar.Options {
	return avatar.Options{
		TextLength:   c.Avatar.TextLength,
		Lenient:      c.Avatar.Lenient,
		DefaultColor: c.Avatar.DefaultColor,
	}
}

// Setup Viper to read the environment and the optional config file
func Setup(cfgFile string) (err error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("exavatar")
	viper.AutomaticEnv()
	applyDefaults(viper.GetViper())

	var cfgFiles []string
	if cfgFile == "" {
		cfgFiles, err = findConfigFiles(Filename)
		if err != nil {
			return err
		}
	} else {
		cfgFiles = []string{cfgFile}
	}

	if len(cfgFiles) == 0 {
		return UseViper(viper.GetViper())
	}

	log.Debugf("Using config files: %s", cfgFiles)

	for _, cfgFile = range cfgFiles {
		tmplName := filepath.Base(cfgFile)
		tmpl := template.New(tmplName)
		tmpl = tmpl.Option("missingkey=zero")
		tmpl, err = tmpl.ParseFiles(cfgFile)
		if err != nil {
			return fmt.Errorf("Unable to open and parse configuration file "+
				"template %s: %s", cfgFile, err)
		}

		dest := new(bytes.Buffer)
		ctxt := &struct {
			Env map[string]string
		}{
			Env: envMap(),
		}
		err = tmpl.ExecuteTemplate(dest, tmplName, ctxt)
		if err != nil {
			return fmt.Errorf("Template error for config files %s: %s", cfgFile, err)
		}

		cfgFile = regexp.MustCompile(`\.local$`).ReplaceAllString(cfgFile, "")
		if ext := filepath.Ext(cfgFile); len(ext) > 0 {
			viper.SetConfigType(ext[1:])
		}
		if err := viper.MergeConfig(dest); err != nil {
			if _, isParseErr := err.(viper.ConfigParseError); isParseErr {
				log.Errorf("Failed to read exavatar configurations from %s", cfgFile)
				log.Error(dest.String())
				return err
			}
		}
	}

	return UseViper(viper.GetViper())
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 8080)
	v.SetDefault("admin.host", "localhost")
	v.SetDefault("admin.port", 6060)
	v.SetDefault("environment", EnvDevelopment)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("assets.timeout", 10*time.Second)
	v.SetDefault("cache.size", cache.DefaultSize)
	v.SetDefault("cache.ttl", cache.DefaultTTL)
	v.SetDefault("avatar.text_length", avatar.DefaultTextLength)
	v.SetDefault("avatar.lenient", false)
}

func envMap() map[string]string {
	env := make(map[string]string)
	for _, i := range os.Environ() {
		sep := strings.Index(i, "=")
		env[i[0:sep]] = i[sep+1:]
	}
	return env
}

// UseViper sets the configured instance of Config. All the invalid values are
// reported at once.
func UseViper(v *viper.Viper) error {
	var errs *multierror.Error

	env := v.GetString("environment")
	if env != EnvProduction && env != EnvDevelopment {
		errs = multierror.Append(errs, fmt.Errorf(`Environment should either be "production" or "development", was: %q`, env))
	}

	for _, key := range []string{"port", "admin.port"} {
		if port := v.GetInt(key); port < 0 || port > 65535 {
			errs = multierror.Append(errs, fmt.Errorf("Invalid %s: %d", key, port))
		}
	}

	assets, err := makeAssets(v, env)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	cacheCfg, err := makeCache(v)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	avatarCfg, err := makeAvatar(v)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	logCfg := Log{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	if _, err := logger.ParseLevel(logCfg.Level); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("Invalid log level: %w", err))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	config = &Config{
		Host:        v.GetString("host"),
		Port:        v.GetInt("port"),
		AdminHost:   v.GetString("admin.host"),
		AdminPort:   v.GetInt("admin.port"),
		Environment: env,
		Log:         logCfg,
		Assets:      assets,
		Cache:       cacheCfg,
		Avatar:      avatarCfg,
	}

	return logger.Init(logger.Options{
		Level:  logCfg.Level,
		Format: logCfg.Format,
	})
}

func makeAssets(v *viper.Viper, env string) (Assets, error) {
	assets := Assets{
		Timeout: v.GetDuration("assets.timeout"),
		S3:      store.S3Options{UseSSL: true},
	}
	if assets.Timeout <= 0 {
		return assets, fmt.Errorf("Assets timeout should be positive, was: %s", assets.Timeout)
	}

	raw := v.GetString("assets.url")
	if raw == "" {
		raw = DevelopmentAssetsURL
		if env == EnvProduction {
			raw = ProductionAssetsURL
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return assets, fmt.Errorf("Invalid assets URL %q: %w", raw, err)
	}
	switch u.Scheme {
	case "file", "mem", "http", "https", "s3", "swift":
	default:
		return assets, fmt.Errorf("Unknown scheme for the assets URL: %q", u.Scheme)
	}
	assets.URL = u

	s3 := subMap(v, "assets.s3", "endpoint", "access_key", "secret_key", "region", "use_ssl")
	if err := decode(s3, &assets.S3); err != nil {
		return assets, fmt.Errorf("Invalid assets.s3 configuration: %w", err)
	}
	swift := subMap(v, "assets.swift", "auth_url", "username", "api_key", "domain", "tenant", "region")
	if err := decode(swift, &assets.Swift); err != nil {
		return assets, fmt.Errorf("Invalid assets.swift configuration: %w", err)
	}
	return assets, nil
}

func makeCache(v *viper.Viper) (Cache, error) {
	c := Cache{
		Size: v.GetInt("cache.size"),
		TTL:  v.GetDuration("cache.ttl"),
	}
	if c.Size < 0 {
		return c, fmt.Errorf("Cache size should not be negative, was: %d", c.Size)
	}
	if u := v.GetString("cache.redis"); u != "" {
		opts, err := redis.ParseURL(u)
		if err != nil {
			return c, fmt.Errorf("config: can't parse redis URL(%s): %s", u, err)
		}
		c.Redis = redis.NewClient(opts)
	}
	return c, nil
}

func makeAvatar(v *viper.Viper) (Avatar, error) {
	a := Avatar{
		TextLength: v.GetInt("avatar.text_length"),
		Lenient:    v.GetBool("avatar.lenient"),
	}
	if a.TextLength <= 0 {
		return a, fmt.Errorf("Avatar text length should be positive, was: %d", a.TextLength)
	}
	if raw := v.GetString("avatar.default_color"); raw != "" {
		c, err := color.Parse(raw)
		if err != nil {
			return a, fmt.Errorf("Invalid avatar default color %q: %w", raw, err)
		}
		a.DefaultColor = c
	}
	return a, nil
}

// subMap collects the given keys under prefix. The keys are read one by one
// so that the values coming from the flags and the env are seen.
func subMap(v *viper.Viper, prefix string, keys ...string) map[string]interface{} {
	m := make(map[string]interface{})
	for _, k := range keys {
		if key := prefix + "." + k; v.IsSet(key) {
			m[k] = v.Get(key)
		}
	}
	return m
}

func decode(input map[string]interface{}, output interface{}) error {
	if len(input) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func createTestViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("exavatar.test")
	v.AddConfigPath("$HOME/.exavatar")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("exavatar")
	v.AutomaticEnv()
	applyDefaults(v)
	v.SetDefault("assets.url", "mem://")
	v.SetDefault("log.level", "error")
	return v
}

// UseTestFile can be used in a test file to inject a configuration
// from a exavatar.test.* file. If it can not find this file in your
// $HOME/.exavatar directory it will use the default one.
func UseTestFile(t *testing.T) {
	t.Helper()

	build.BuildMode = build.ModeDev
	v := createTestViper()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			v = createTestViper()
		} else {
			t.Fatalf("fatal error test config file: %s", err)
		}
	}

	if err := UseViper(v); err != nil {
		t.Fatalf("fatal error test config file: %s", err)
	}
}

// FindConfigFile search in the Paths directories for the file with the given
// name. It returns an error if it cannot find it or if an error occurs while
// searching.
func FindConfigFile(name string) (string, error) {
	for _, cp := range Paths {
		filename := filepath.Join(utils.AbsPath(cp), name)
		ok, err := utils.FileExists(filename)
		if err != nil {
			return "", err
		}
		if ok {
			return filename, nil
		}
	}
	return "", fmt.Errorf("Could not find config file %q", name)
}

// findConfigFiles search in the Paths directories for the first existing directory,
// then look for supported Viper file for both .ext and .ext.local version, the later
// taking precedence.
func findConfigFiles(name string) ([]string, error) {
	var configFiles []string
	configFile := ""
	for _, ext := range viper.SupportedExts {
		configFile, _ = FindConfigFile(name + "." + ext)
		if configFile != "" {
			break
		}
	}
	if configFile == "" {
		return nil, nil
	}

	configFiles = append(configFiles, configFile)

	configFile += ".local"
	ok, _ := utils.FileExists(configFile)
	if ok {
		configFiles = append(configFiles, configFile)
	}

	return configFiles, nil
}
