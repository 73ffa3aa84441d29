package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("默认值", func(t *testing.T) {
		cfg, err := LoadFile(writeConfig(t, "jwt:\n  secret: test\n"))
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, StorageLocal, cfg.Storage.Driver)
		assert.Equal(t, "./web/images", cfg.Storage.LocalDir)
		assert.Equal(t, 10*time.Second, cfg.Workflow.Timeout)
		assert.Equal(t, 5*time.Minute, cfg.Workflow.FlashTTL)
		assert.False(t, cfg.Workflow.StrictDeleteFlash)
		assert.Equal(t, "bookstore.admin.events", cfg.Events.Exchange)
		assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.AllowMethods)
	})

	t.Run("文件覆盖默认值", func(t *testing.T) {
		cfg, err := LoadFile(writeConfig(t, `
server:
  port: 9090
workflow:
  strict_delete_flash: true
  timeout: 3s
storage:
  driver: minio
  minio:
    endpoint: localhost:9000
    bucket: covers
`))
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.True(t, cfg.Workflow.StrictDeleteFlash)
		assert.Equal(t, 3*time.Second, cfg.Workflow.Timeout)
		assert.Equal(t, "covers", cfg.Storage.MinIO.Bucket)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("BOOKSTORE_SERVER_PORT", "7070")
		cfg, err := LoadFile(writeConfig(t, "server:\n  port: 9090\n"))
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080, Mode: "debug"},
			Storage: StorageConfig{Driver: StorageLocal, LocalDir: "./web/images"},
		}
	}

	assert.NoError(t, validate(valid()))

	cases := map[string]func(c *Config){
		"端口无效":         func(c *Config) { c.Server.Port = 0 },
		"生产环境默认密钥":     func(c *Config) { c.Server.Mode = "release"; c.JWT.Secret = "your-secret-key-change-in-production" },
		"未知存储驱动":       func(c *Config) { c.Storage.Driver = "s3" },
		"本地存储缺目录":      func(c *Config) { c.Storage.LocalDir = "" },
		"MinIO缺bucket": func(c *Config) { c.Storage.Driver = StorageMinIO; c.Storage.MinIO.Endpoint = "x:9000" },
		"管理员缺密码":       func(c *Config) { c.Admin.Email = "admin@example.com" },
		"事件缺地址":        func(c *Config) { c.Events.Enabled = true },
		"跨域凭证配合通配符":    func(c *Config) { c.CORS.AllowCredentials = true; c.CORS.AllowOrigins = []string{"*"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.Error(t, validate(c))
		})
	}
}
