package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			check: func(t *testing.T, config *Config) {
				if config.Port != "8081" {
					t.Errorf("Expected default port 8081, got %s", config.Port)
				}
				if config.Background.WorkerLimit != 16 {
					t.Errorf("Expected default worker limit 16, got %d", config.Background.WorkerLimit)
				}
				if config.Log.Format != "text" {
					t.Errorf("Expected default log format text, got %s", config.Log.Format)
				}
				if config.Background.LoopName != "main" {
					t.Errorf("Expected default loop name main, got %s", config.Background.LoopName)
				}
			},
		},
		{
			name: "custom background settings",
			envVars: map[string]string{
				"BACKGROUND_LABEL":   "pricing",
				"BACKGROUND_WORKERS": "4",
				"LOG_LEVEL":          "debug",
			},
			check: func(t *testing.T, config *Config) {
				if config.Background.Label != "pricing" {
					t.Errorf("Expected label pricing, got %s", config.Background.Label)
				}
				if config.Background.WorkerLimit != 4 {
					t.Errorf("Expected worker limit 4, got %d", config.Background.WorkerLimit)
				}
				if config.Log.Level != "debug" {
					t.Errorf("Expected log level debug, got %s", config.Log.Level)
				}
			},
		},
		{
			name:    "negative worker limit",
			envVars: map[string]string{"BACKGROUND_WORKERS": "-1"},
			wantErr: true,
		},
		{
			name:    "unknown log format",
			envVars: map[string]string{"LOG_FORMAT": "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			config, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, config)
			}
		})
	}
}

func TestAdaptConfigForServerless(t *testing.T) {
	t.Run("server mode", func(t *testing.T) {
		t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")

		config := &Config{Log: LogConfig{Format: "text"}}
		AdaptConfigForServerless(config)
		if config.Log.Format != "text" {
			t.Errorf("Expected log format to stay text, got %s", config.Log.Format)
		}
		if GetDeploymentMode() != "server" {
			t.Errorf("Expected server deployment mode, got %s", GetDeploymentMode())
		}
	})

	t.Run("lambda mode", func(t *testing.T) {
		t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "orders")
		t.Setenv("STAGE", "prod")

		config := &Config{Log: LogConfig{Format: "text"}}
		AdaptConfigForServerless(config)
		if config.Log.Format != "json" {
			t.Errorf("Expected log format json, got %s", config.Log.Format)
		}
		if config.Background.Label != "orders-background" {
			t.Errorf("Expected label orders-background, got %s", config.Background.Label)
		}
		if config.Stage != "prod" {
			t.Errorf("Expected stage prod, got %s", config.Stage)
		}
		if !GetServerlessConfig().IsLambda {
			t.Error("Expected Lambda to be detected")
		}
	})
}

func TestGetServerlessConfig(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "orders")
	t.Setenv("AWS_REGION", "ap-southeast-2")
	t.Setenv("STAGE", "")

	cfg := GetServerlessConfig()
	if !cfg.IsLambda || cfg.FunctionName != "orders" {
		t.Errorf("Expected Lambda function orders, got %+v", cfg)
	}
	if cfg.Region != "ap-southeast-2" {
		t.Errorf("Expected region ap-southeast-2, got %s", cfg.Region)
	}
	if cfg.Stage != "dev" {
		t.Errorf("Expected fallback stage dev, got %s", cfg.Stage)
	}
}
