package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// fileConfig mirrors Config in HCL. Every attribute is optional; absent ones
// keep the default. Durations are Go duration strings such as "90s".
//
//	server {
//	  port            = 9090
//	  strict_requests = true
//	}
//	llm {
//	  provider = "gemini"
//	  model    = "gemini-1.5-pro"
//	}
//	journal {
//	  backend = "filesystem"
//	  dir     = "/var/lib/learnassist"
//	}
type fileConfig struct {
	Server  *serverBlock  `hcl:"server,block"`
	LLM     *llmBlock     `hcl:"llm,block"`
	Mongo   *mongoBlock   `hcl:"mongo,block"`
	Journal *journalBlock `hcl:"journal,block"`
	Log     *logBlock     `hcl:"log,block"`
}

type serverBlock struct {
	Host           *string  `hcl:"host,optional"`
	Port           *int     `hcl:"port,optional"`
	ReadTimeout    *string  `hcl:"read_timeout,optional"`
	WriteTimeout   *string  `hcl:"write_timeout,optional"`
	MetricsAddr    *string  `hcl:"metrics_addr,optional"`
	StrictRequests *bool    `hcl:"strict_requests,optional"`
	AllowedOrigins []string `hcl:"allowed_origins,optional"`
}

type llmBlock struct {
	Provider *string `hcl:"provider,optional"`
	APIKey   *string `hcl:"api_key,optional"`
	BaseURL  *string `hcl:"base_url,optional"`
	Model    *string `hcl:"model,optional"`
	Timeout  *string `hcl:"timeout,optional"`
}

type mongoBlock struct {
	URI      *string `hcl:"uri,optional"`
	Database *string `hcl:"database,optional"`
}

type journalBlock struct {
	Backend *string `hcl:"backend,optional"`
	Dir     *string `hcl:"dir,optional"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	if s := fc.Server; s != nil {
		assign(&c.Server.Host, s.Host)
		assign(&c.Server.Port, s.Port)
		assign(&c.Server.MetricsAddr, s.MetricsAddr)
		assign(&c.Server.StrictRequests, s.StrictRequests)
		if s.AllowedOrigins != nil {
			c.Server.AllowedOrigins = s.AllowedOrigins
		}
		if err := assignDuration(&c.Server.ReadTimeout, s.ReadTimeout, "server.read_timeout"); err != nil {
			return err
		}
		if err := assignDuration(&c.Server.WriteTimeout, s.WriteTimeout, "server.write_timeout"); err != nil {
			return err
		}
	}

	if l := fc.LLM; l != nil {
		assign(&c.LLM.Provider, l.Provider)
		assign(&c.LLM.APIKey, l.APIKey)
		assign(&c.LLM.BaseURL, l.BaseURL)
		assign(&c.LLM.Model, l.Model)
		if err := assignDuration(&c.LLM.Timeout, l.Timeout, "llm.timeout"); err != nil {
			return err
		}
	}

	if m := fc.Mongo; m != nil {
		assign(&c.Mongo.URI, m.URI)
		assign(&c.Mongo.Database, m.Database)
	}

	if j := fc.Journal; j != nil {
		assign(&c.Journal.Backend, j.Backend)
		assign(&c.Journal.Dir, j.Dir)
	}

	if l := fc.Log; l != nil {
		assign(&c.Log.Level, l.Level)
		assign(&c.Log.Format, l.Format)
	}

	return nil
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func assignDuration(dst *time.Duration, v *string, name string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}
