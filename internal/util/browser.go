package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// linuxFallbackBrowsers xdg-open 不可用时依次尝试
var linuxFallbackBrowsers = []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}

// LocalURL 本机访问地址
func LocalURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}

// BrowserCommand 返回指定系统下打开 url 的首选命令
func BrowserCommand(goos, url string) []string {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	case "darwin":
		return []string{"open", url}
	default:
		return []string{"xdg-open", url}
	}
}

// FallbackCommands 首选命令失败后的备选命令
func FallbackCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		return [][]string{{"explorer", url}}
	case "linux":
		cmds := make([][]string, 0, len(linuxFallbackBrowsers))
		for _, b := range linuxFallbackBrowsers {
			cmds = append(cmds, []string{b, url})
		}
		return cmds
	}
	return nil
}

// OpenBrowser 用默认浏览器打开 url，失败时尝试备选方式
func OpenBrowser(url string) error {
	first := BrowserCommand(runtime.GOOS, url)
	err := exec.Command(first[0], first[1:]...).Start()
	if err == nil {
		return nil
	}

	for _, cmd := range FallbackCommands(runtime.GOOS, url) {
		if exec.Command(cmd[0], cmd[1:]...).Start() == nil {
			return nil
		}
	}
	return err
}
