// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/alvinbaena/pwdguard/internal/util"
	"github.com/alvinbaena/pwdguard/pkg/hibp"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string        `mapstructure:"PORT" validate:"required,numeric"`
	SelfTLS     bool          `mapstructure:"SELF_TLS" validate:"required_without_all=TLSCert TLSKey"`
	TLSCert     string        `mapstructure:"TLS_CERT" validate:"required_if=SelfTLS false,required_with=TLSKey"`
	TLSKey      string        `mapstructure:"TLS_KEY" validate:"required_if=SelfTLS false,required_with=TLSCert"`
	Debug       bool          `mapstructure:"DEBUG"`
	HibpAPIURL  string        `mapstructure:"HIBP_API_URL" validate:"required,url"`
	HibpTimeout time.Duration `mapstructure:"HIBP_TIMEOUT" validate:"gt=0"`
	MirrorDir   string        `mapstructure:"HIBP_MIRROR_DIR" validate:"omitempty,dir"`
	CacheSize   int64         `mapstructure:"CACHE_SIZE" validate:"gte=0"`
	CacheTTL    time.Duration `mapstructure:"CACHE_TTL" validate:"gte=0"`
}

func bindEnvs(iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch v.Kind() {
		case reflect.Struct:
			bindEnvs(v.Interface(), append(parts, tv)...)
		default:
			_ = viper.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

func setDefaults() {
	viper.SetDefault("PORT", "3100")
	viper.SetDefault("HIBP_API_URL", hibp.DefaultAPIURL)
	viper.SetDefault("HIBP_TIMEOUT", hibp.DefaultTimeout)
	viper.SetDefault("CACHE_SIZE", 1024)
	viper.SetDefault("CACHE_TTL", time.Hour)
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_without_all":
		return fmt.Sprintf("This field is required if fields [%s] are missing", util.ToScreamingSnakeCase(fe.Param()))
	case "required_if":
		return fmt.Sprintf("This field is required if %s", util.ToScreamingSnakeCase(fe.Param()))
	case "required_with":
		return fmt.Sprintf("This field requires the presence of %s", util.ToScreamingSnakeCase(fe.Param()))
	case "url":
		return "This field must be a valid URL"
	case "dir":
		return "This field must be an existing directory"
	case "numeric":
		return "This field must be a number"
	}
	return fe.Error() // default error
}

// LoadConfig reads the server configuration from the environment and from any flags bound to
// viper, then validates it.
func LoadConfig() (config Config, err error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults()

	// This is to not require a config file to unmarshal Envs in a struct
	// https://github.com/spf13/viper/issues/188#issuecomment-399884438
	config = Config{}
	bindEnvs(config)

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	validate := validator.New()
	// Report fields by their environment name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})

	if err = validate.Struct(&config); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			var msgs []string
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), msgForTag(fe)))
			}

			err = errors.New(strings.Join(msgs, ". "))
		}
	}

	return
}
