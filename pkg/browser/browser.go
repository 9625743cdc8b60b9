// Package browser открывает ссылки на статьи в системном браузере.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrEmptyURL возвращается для статьи без ссылки.
var ErrEmptyURL = errors.New("empty URL")

// Opener запускает внешнюю команду. Подменяется в тестах.
type Opener func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // #nosec G204 -- URL validated in Validate
}

// Browser открывает ссылки через команду, выбранную по ОС.
type Browser struct {
	goos   string
	opener Opener
}

// New создает Browser для текущей платформы.
func New() *Browser {
	return &Browser{goos: runtime.GOOS, opener: startCommand}
}

// NewWithOpener создает Browser с заданной платформой и способом запуска команды.
func NewWithOpener(goos string, opener Opener) *Browser {
	return &Browser{goos: goos, opener: opener}
}

// Validate разрешает только абсолютные http и https ссылки.
func Validate(urlString string) error {
	if urlString == "" {
		return ErrEmptyURL
	}
	parsedURL, err := url.Parse(urlString)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https allowed)", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("invalid URL: missing host in %q", urlString)
	}
	return nil
}

// Open проверяет ссылку и передает ее системному браузеру.
func (b *Browser) Open(urlString string) error {
	if err := Validate(urlString); err != nil {
		return err
	}
	switch b.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return b.opener("xdg-open", urlString)
	case "darwin":
		return b.opener("open", urlString)
	case "windows":
		return b.opener("rundll32", "url.dll,FileProtocolHandler", urlString)
	default:
		return fmt.Errorf("unsupported platform: %s", b.goos)
	}
}

// Open открывает ссылку в браузере текущей платформы.
func Open(urlString string) error {
	return New().Open(urlString)
}
