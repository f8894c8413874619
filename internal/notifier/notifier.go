// Package notifier delivers reminders to the girassol tray app over its local
// webhook, or to a writer when no desktop is available.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/logger"
)

const trayExecutable = "girassol-tray"

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
	retryDelay        = constants.NotifyRetryDelay

	// ErrTrayNotRunning means there is no tray app to deliver to
	ErrTrayNotRunning = errors.New("girassol-tray is not running")
)

// Sender delivers one notification
type Sender interface {
	Notify(title, body string) error
}

// Tray posts notifications to the running tray app
type Tray struct{}

type WebhookPayload struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Tray {
	return &Tray{}
}

func (n *Tray) Notify(title, body string) error {
	trayAppConfigPath, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayAppConfigPath, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:      title,
		Text:       body,
		DurationMs: constants.NotificationDurationMs,
	}
	return sendWithRetry(port, secret, payload)
}

// Writer prints notifications instead of showing them. Used for dry runs
// and when the tray app is missing.
type Writer struct {
	W io.Writer
}

func (w Writer) Notify(title, body string) error {
	_, err := fmt.Fprintf(w.W, "[%s] %s\n", title, body)
	return err
}

// Fallback tries Primary and falls back to Secondary when the tray is absent
type Fallback struct {
	Primary   Sender
	Secondary Sender
}

func (f Fallback) Notify(title, body string) error {
	err := f.Primary.Notify(title, body)
	if err == nil {
		return nil
	}
	logger.Debug("Primary notifier failed, falling back", "error", err)
	return f.Secondary.Notify(title, body)
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// settings.json may point the lockfile somewhere else
	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if data, err := os.ReadFile(settingsPath); err == nil {
		var store struct {
			Settings struct {
				LockfileDir *string `json:"lockfile_dir"`
			} `json:"settings"`
		}
		if err := json.Unmarshal(data, &store); err == nil {
			if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
				return *store.Settings.LockfileDir, nil
			}
		}
	}

	return trayConfigDir, nil
}

// findAndValidateTrayProcess reads "port|pid|secret" from the lockfile and
// checks that pid really is the tray app.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), trayExecutable) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, trayExecutable, process.Executable())
	}

	return port, secret, nil
}

// sendWithRetry retries transport failures only; an HTTP error status is final
func sendWithRetry(port, secret string, payload WebhookPayload) error {
	var err error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}
		var final bool
		final, err = sendNotification(port, secret, payload)
		if err == nil || final {
			return err
		}
	}
	return err
}

// sendNotification reports final=true when the tray answered with an error status
func sendNotification(port string, secret string, payload WebhookPayload) (final bool, err error) {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return true, err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return true, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Girassol-Secret", secret)

	client := &http.Client{Timeout: 5 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return true, nil
	}

	body, _ := io.ReadAll(res.Body)
	return true, fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
