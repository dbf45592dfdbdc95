package serve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/samber/lo"
	psnet "github.com/shirou/gopsutil/v3/net"
	"golang.org/x/term"
)

// printBanner tells the host where singers can reach the server.
func printBanner(ctx context.Context, w io.Writer, params *Params) {
	urls := joinURLs(ctx, params.Host, params.Port)

	fmt.Fprintln(w, "Karaoke server is up. Join at:")
	for _, u := range urls {
		fmt.Fprintf(w, "  %s\n", u)
	}

	if len(urls) == 0 {
		return
	}

	if params.Qr {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if err := common.RenderQR(w, urls[0], false); err != nil {
				slog.Warn("failed to render QR code", "error", err)
			}
		} else {
			slog.Info("stdout is not a terminal, skipping QR code")
		}
	}

	if params.CopyUrl {
		if err := clipboard.WriteAll(urls[0]); err != nil {
			slog.Warn("failed to copy join URL to clipboard", "error", err)
		} else {
			slog.Info("join URL copied to clipboard", "url", urls[0])
		}
	}
}

// joinURLs lists the URLs the server answers on. For wildcard binds every
// non-loopback IPv4 address comes first, since those are what phones need.
func joinURLs(ctx context.Context, host string, port int) []string {
	portStr := strconv.Itoa(port)
	local := "http://" + net.JoinHostPort("localhost", portStr)

	if !isWildcardHost(host) {
		return []string{"http://" + net.JoinHostPort(host, portStr)}
	}

	ifaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		slog.Debug("failed to list network interfaces", "error", err)
		return []string{local}
	}

	var urls []string
	for _, iface := range ifaces {
		if !lo.Contains(iface.Flags, "up") || lo.Contains(iface.Flags, "loopback") {
			continue
		}
		for _, addr := range iface.Addrs {
			ip, _, err := net.ParseCIDR(addr.Addr)
			if err != nil || ip.To4() == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
				continue
			}
			urls = append(urls, "http://"+net.JoinHostPort(ip.String(), portStr))
		}
	}

	return lo.Uniq(append(urls, local))
}

func isWildcardHost(host string) bool {
	return host == "" || host == "0.0.0.0" || host == "::"
}
