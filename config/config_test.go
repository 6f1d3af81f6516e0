package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/calc-service/config"
)

var _ = Describe("Config", func() {
	var (
		tempDir    string
		originalWd string
	)

	BeforeEach(func() {
		var err error
		originalWd, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())

		Expect(os.Chdir(tempDir)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Chdir(originalWd)).To(Succeed())
		os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		Context("without a config file", func() {
			It("should use defaults", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(config.DefaultPort))
				Expect(cfg.Server.Host).To(BeEmpty())
				Expect(cfg.Server.Environment).To(Equal(config.EnvDev))
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelInfo))
				Expect(cfg.Metrics.Enabled).To(BeTrue())
				Expect(cfg.Metrics.BufferSize).To(Equal(1000))
				Expect(cfg.Address()).To(Equal(":3000"))
			})
		})

		Context("with environment variables", func() {
			It("should read the port from PORT", func() {
				GinkgoT().Setenv("PORT", "8081")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(8081))
				Expect(cfg.Address()).To(Equal(":8081"))
			})

			It("should read nested keys with underscores", func() {
				GinkgoT().Setenv("LOGGING_LEVEL", "debug")
				GinkgoT().Setenv("SERVER_ENVIRONMENT", "prod")
				GinkgoT().Setenv("METRICS_ENABLED", "false")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelDebug))
				Expect(cfg.Server.Environment).To(Equal(config.EnvProd))
				Expect(cfg.Metrics.Enabled).To(BeFalse())
			})

			It("should reject a non-numeric PORT", func() {
				GinkgoT().Setenv("PORT", "abc")

				cfg, err := config.Load()
				Expect(err).To(HaveOccurred())
				Expect(cfg).To(BeNil())
			})

			It("should reject an out of range PORT", func() {
				GinkgoT().Setenv("PORT", "70000")

				cfg, err := config.Load()
				Expect(err).To(HaveOccurred())
				Expect(cfg).To(BeNil())
			})
		})

		Context("with valid config file", func() {
			BeforeEach(func() {
				configContent := `
server:
  host: "127.0.0.1"
  port: 4000
  environment: "staging"

logging:
  level: "warn"

metrics:
  enabled: true
  buffer_size: 64
`
				err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should load configuration successfully", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Environment).To(Equal(config.EnvStaging))
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelWarn))
				Expect(cfg.Metrics.BufferSize).To(Equal(64))
				Expect(cfg.Address()).To(Equal("127.0.0.1:4000"))
			})

			It("should let PORT override the file", func() {
				GinkgoT().Setenv("PORT", "5000")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(5000))
			})
		})

		Context("with an invalid config file", func() {
			It("should reject an unknown environment", func() {
				content := "server:\n  environment: \"qa\"\n"
				Expect(os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(content), 0644)).To(Succeed())

				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject malformed YAML", func() {
				content := "server: [port\n"
				Expect(os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(content), 0644)).To(Succeed())

				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = &config.Config{
				Server:  config.ServerConfig{Port: 3000, Environment: config.EnvDev},
				Logging: config.LoggingConfig{Level: config.LogLevelInfo},
				Metrics: config.MetricsConfig{Enabled: true, BufferSize: 10},
			}
		})

		It("should accept a valid configuration", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should accept a hostname", func() {
			cfg.Server.Host = "localhost"
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject an invalid host", func() {
			cfg.Server.Host = "not a host"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject a zero port", func() {
			cfg.Server.Port = 0
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject an unknown log level", func() {
			cfg.Logging.Level = "verbose"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject an empty metrics buffer", func() {
			cfg.Metrics.BufferSize = 0
			Expect(cfg.Validate()).NotTo(Succeed())
		})
	})
})
