package entities

import (
	"errors"
	"fmt"
)

// ErrSession is matched by every per-host session failure
var ErrSession = errors.New("session failed")

// SessionError reports that the VLAN output of a host could not be obtained
type SessionError struct {
	Host string
	Err  error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session to %s failed: %v", e.Host, e.Err)
}

func (e *SessionError) Unwrap() []error {
	return []error{ErrSession, e.Err}
}

// HostResult is the outcome of collecting one host: records or a failure, never both
type HostResult struct {
	Host    string
	Records []VlanRecord
	Err     error
}

// Failed reports whether the host produced no output at all
func (h HostResult) Failed() bool {
	return h.Err != nil
}

// HostFailure names a host that was skipped and why
type HostFailure struct {
	Host   string
	Reason string
}

// Report accumulates records host after host.
// Records keep host order first and line order within a host.
type Report struct {
	Hosts    []string
	Records  []VlanRecord
	Failures []HostFailure
}

// Append adds the outcome of one host to the report
func (r *Report) Append(res HostResult) {
	r.Hosts = append(r.Hosts, res.Host)
	if res.Failed() {
		r.Failures = append(r.Failures, HostFailure{Host: res.Host, Reason: res.Err.Error()})
		return
	}
	r.Records = append(r.Records, res.Records...)
}

// CountByHost returns how many records each host contributed
func (r Report) CountByHost() map[string]int {
	counts := make(map[string]int, len(r.Hosts))
	for _, host := range r.Hosts {
		counts[host] = 0
	}
	for _, rec := range r.Records {
		counts[rec.Host]++
	}
	return counts
}

// Rows returns the records as string rows in ReportColumns order
func (r Report) Rows() [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		rows = append(rows, rec.Columns())
	}
	return rows
}
