package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdrop/pkg/config"
	"github.com/umputun/newsdrop/pkg/domain"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: configPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	t.Setenv("NEWSDROP_TEST_DB", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("NEWSDROP_TEST_LISTEN", "127.0.0.1:1") // replaced by --listen

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, Opts{Config: "testdata/test_config.yml", Listen: fmt.Sprintf("127.0.0.1:%d", port), NoColor: true})
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 50*time.Millisecond)

	resp, err := http.Get(base + "/api/v1/status")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	resp, err = http.Get(base + "/api/v1/users")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "[]\n", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("run didn't return after cancel")
	}
}

func TestMakeAdapters(t *testing.T) {
	t.Run("only enabled", func(t *testing.T) {
		cfg := config.ChannelsConfig{}
		cfg.Telegram = config.TelegramConfig{Enabled: true, Token: "t", APIURL: "http://localhost", RPS: 1}
		cfg.SMS = config.GatewayConfig{Enabled: true, URL: "http://localhost/sms", RPS: 1}

		adapters, closeFn := makeAdapters(cfg, time.Second)
		defer closeFn()
		require.Len(t, adapters, 2)
		assert.Equal(t, domain.ChannelTelegram, adapters[0].Channel())
		assert.Equal(t, domain.ChannelSMS, adapters[1].Channel())
		assert.NotNil(t, telegramBot(adapters))
	})

	t.Run("dry run fills disabled channels", func(t *testing.T) {
		cfg := config.ChannelsConfig{DryRun: true}
		cfg.Email = config.EmailConfig{Enabled: true, Host: "localhost", Port: 25, From: "news@example.com"}

		adapters, closeFn := makeAdapters(cfg, time.Second)
		defer closeFn()
		require.Len(t, adapters, len(domain.AllChannels))
		channels := make([]domain.Channel, 0, len(adapters))
		for _, a := range adapters {
			channels = append(channels, a.Channel())
		}
		assert.ElementsMatch(t, domain.AllChannels, channels)
		assert.Equal(t, domain.ChannelEmail, adapters[0].Channel())
	})

	t.Run("nothing enabled", func(t *testing.T) {
		adapters, closeFn := makeAdapters(config.ChannelsConfig{}, time.Second)
		closeFn()
		assert.Empty(t, adapters)
		assert.Nil(t, telegramBot(adapters))
	})
}

func TestSecrets(t *testing.T) {
	cfg := config.ChannelsConfig{}
	cfg.Email.Password = "smtp-pass"
	cfg.WhatsApp.Token = "wa-token"
	cfg.Telegram.WebhookSecret = "hook-secret"
	assert.Equal(t, []string{"smtp-pass", "hook-secret", "wa-token"}, secrets(cfg))
	assert.Empty(t, secrets(config.ChannelsConfig{}))
}
