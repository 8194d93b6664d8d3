package internal

import (
	"log"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

func ShowVersion() {
	log.Printf("Version: %s\n", versioninfo.Short())
}

// EnvironmentVars logs the variables starting with prefix, masking anything
// that looks like a secret.
func EnvironmentVars(prefix string) {
	log.Println("Environment variables")

	sensitiveRegex := regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)
	environ := make([]string, 0)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, prefix) {
			environ = append(environ, entry)
		}
	}
	sort.Strings(environ)

	for _, entry := range environ {
		kv := strings.SplitN(entry, "=", 2)
		if sensitiveRegex.MatchString(kv[0]) {
			log.Printf("  %s: ********\n", kv[0])
		} else {
			log.Printf("  %s: %s\n", kv[0], kv[1])
		}
	}
}

func RuntimeInfo() {
	log.Printf("PID: %d", os.Getpid())
	log.Printf("CPUs: %d, GOMAXPROCS: %d, %s/%s", runtime.NumCPU(), runtime.GOMAXPROCS(0), runtime.GOOS, runtime.GOARCH)
}
