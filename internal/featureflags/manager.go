package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Manager evaluates feature flags defined in a comma-separated key=value
// list, e.g. "reading_stats=on,review_drafts=25%,legacy_feed=off".
type Manager struct {
	flags map[string]flag
}

type flagKind int

const (
	flagOff flagKind = iota
	flagOn
	flagPercent
)

type flag struct {
	kind flagKind
	pct  int
}

// NewManager parses a config string into a flag manager. Malformed pairs
// are skipped rather than rejected so a bad flag never blocks startup.
func NewManager(raw string) *Manager {
	out := make(map[string]flag)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name := normalize(parts[0])
		f, ok := parseValue(normalize(parts[1]))
		if name == "" || !ok {
			continue
		}
		out[name] = f
	}

	return &Manager{flags: out}
}

func parseValue(value string) (flag, bool) {
	switch value {
	case "on", "true", "1":
		return flag{kind: flagOn}, true
	case "off", "false", "0":
		return flag{kind: flagOff}, true
	}
	if strings.HasSuffix(value, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil || pct < 0 || pct > 100 {
			return flag{}, false
		}
		return flag{kind: flagPercent, pct: pct}, true
	}
	return flag{}, false
}

// Enabled reports whether a flag is on for the given user. Percentage
// flags bucket users deterministically, so a user stays in or out of a
// rollout across requests. Unknown flags are off.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	f, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch f.kind {
	case flagOn:
		return true
	case flagPercent:
		if f.pct >= 100 {
			return true
		}
		if f.pct <= 0 || userID == 0 {
			return false
		}
		return rolloutBucket(name, userID) < f.pct
	default:
		return false
	}
}

// Names returns the configured flag names.
func (m *Manager) Names() []string {
	out := make([]string, 0, len(m.flags))
	for name := range m.flags {
		out = append(out, name)
	}
	return out
}

// Snapshot evaluates every configured flag for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
