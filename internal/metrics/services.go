package metrics

import (
	"os"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type ServiceStatus struct {
	Name      string    `json:"name"`
	State     string    `json:"state"` // raw systemctl is-active output
	Running   bool      `json:"running"`
	CheckedAt time.Time `json:"checkedAt"`
}

var defaultServices = []string{"ssh", "docker", "cron"}

// WatchedServices returns the service units to show on the dashboard, from
// the WATCHED_SERVICES env (comma separated) or a default set.
func WatchedServices() []string {
	raw := os.Getenv("WATCHED_SERVICES")
	if raw == "" {
		return defaultServices
	}

	var names []string
	for _, n := range strings.Split(raw, ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return defaultServices
	}
	return names
}

// CheckServices asks systemctl for each unit's state. A failing or missing
// systemctl degrades to state "unknown" rather than erroring.
func CheckServices(names []string) []ServiceStatus {
	statuses := make([]ServiceStatus, 0, len(names))
	for _, name := range names {
		statuses = append(statuses, checkService(name))
	}
	return statuses
}

func checkService(name string) ServiceStatus {
	status := ServiceStatus{
		Name:      name,
		State:     "unknown",
		CheckedAt: time.Now(),
	}

	out, err := exec.Command("systemctl", "is-active", name).Output()
	state := strings.TrimSpace(string(out))
	if state == "" {
		if err != nil {
			log.Warnf("unable to check service %s: %v", name, err)
		}
		return status
	}

	// is-active exits nonzero for anything but "active"; the output is still
	// the state we want to show
	status.State = state
	status.Running = state == "active"
	return status
}
