package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/domain/ports"
	"github.com/carlosrabelo/vlaninv/infrastructure/report"
)

const switchOutput = `
VLAN Name                             Status    Ports
---- -------------------------------- --------- -------------------------------
1    default                          active    Gi0/1, Gi0/2
10   USERS-10.0.10.0                  active    Gi0/3
20   VOICE_10.0.20.0                  active
1002 fddi-default                     act/unsup
`

// fakeRunner answers per host and records the settings it was called with
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	seen    []entities.SwitchConfig
}

func (f *fakeRunner) RunCommand(ctx context.Context, sw entities.SwitchConfig) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, sw)
	if err, ok := f.errs[sw.Target]; ok {
		return "", err
	}
	return f.outputs[sw.Target], nil
}

type testEnv struct {
	app    *app
	out    *bytes.Buffer
	errOut *bytes.Buffer
	runner *fakeRunner
	closed int
}

func newTestEnv(stdin string) *testEnv {
	env := &testEnv{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, runner: &fakeRunner{}}
	env.app = newApp(strings.NewReader(stdin), env.out, env.errOut)
	env.app.newRunner = func(*slog.Logger) ports.SessionRunner { return env.runner }
	env.app.closeAll = func() { env.closed++ }
	return env
}

func (env *testEnv) run(args ...string) error {
	cmd := newRootCmd(env.app)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestVersion(t *testing.T) {
	env := newTestEnv("")
	require.NoError(t, env.run("version"))
	assert.Equal(t, "vlaninv dev (built unknown)\n", env.out.String())
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	hosts := writeFile(t, dir, "input.csv", "hostname\nsw1\nsw2\nsw3\n")
	output := filepath.Join(dir, "vlans.csv")
	cfgPath := writeFile(t, dir, "config.yaml", `
transport: telnet
username: admin
concurrency: 2
switches:
  - target: sw3
    transport: ssh
`)

	env := newTestEnv("s3cret\n")
	env.runner.outputs = map[string]string{"sw1": switchOutput, "sw3": "\n\n\n10   MGMT\n"}
	env.runner.errs = map[string]error{"sw2": errors.New("connection refused")}

	err := env.run("collect", "--config", cfgPath, "--hosts", hosts, "--output", output)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Hostname", "Vlan ID", "Name", "Subnet"},
		{"sw1", "1", "default", ""},
		{"sw1", "10", "USERS", "10.0.10.0"},
		{"sw1", "20", "VOICE", "10.0.20.0"},
		{"sw1", "1002", "fddi", "default"},
		{"sw3", "10", "MGMT", ""},
	}, readCSV(t, output))

	summary := env.out.String()
	assert.Contains(t, summary, "sw1")
	assert.Contains(t, summary, "4 VLANs")
	assert.Contains(t, summary, "Failed hosts (1)")
	assert.Contains(t, summary, "connection refused")
	assert.Contains(t, summary, "5 records from 3 hosts")
	assert.Contains(t, env.errOut.String(), "Enter password: ")
	assert.Equal(t, 1, env.closed)

	require.Len(t, env.runner.seen, 3)
	for _, sw := range env.runner.seen {
		assert.Equal(t, "admin", sw.Username)
		assert.Equal(t, "s3cret", sw.Password)
		if sw.Target == "sw3" {
			assert.Equal(t, "ssh", sw.Transport)
		} else {
			assert.Equal(t, "telnet", sw.Transport)
		}
	}
}

func TestCollect_PromptsUsernameAndFlagsOverride(t *testing.T) {
	dir := t.TempDir()
	hosts := writeFile(t, dir, "hosts.txt", "sw1\n")
	output := filepath.Join(dir, "out.csv")
	cfgPath := writeFile(t, dir, "config.yaml", "transport: ssh\n")

	env := newTestEnv("operator\npw\n")
	env.runner.outputs = map[string]string{"sw1": switchOutput}

	err := env.run("collect", "--config", cfgPath, "--hosts", hosts, "--output", output, "--transport", "telnet")
	require.NoError(t, err)

	require.Len(t, env.runner.seen, 1)
	assert.Equal(t, "operator", env.runner.seen[0].Username)
	assert.Equal(t, "pw", env.runner.seen[0].Password)
	assert.Equal(t, "telnet", env.runner.seen[0].Transport)
}

func TestCollect_SNMPNeedsNoCredentials(t *testing.T) {
	dir := t.TempDir()
	hosts := writeFile(t, dir, "hosts.txt", "sw1\n")
	output := filepath.Join(dir, "out.csv")
	cfgPath := writeFile(t, dir, "config.yaml", "transport: snmp\nsnmp_community: ro\n")

	env := newTestEnv("")
	env.runner.outputs = map[string]string{"sw1": switchOutput}

	require.NoError(t, env.run("collect", "--config", cfgPath, "--hosts", hosts, "--output", output))
	assert.NotContains(t, env.errOut.String(), "Enter")
	assert.Equal(t, "ro", env.runner.seen[0].SnmpCommunity)
}

func TestCollect_Errors(t *testing.T) {
	dir := t.TempDir()
	hosts := writeFile(t, dir, "hosts.txt", "sw1\n")
	cfgPath := writeFile(t, dir, "config.yaml", "username: admin\npassword: pw\n")
	badCfg := writeFile(t, dir, "bad.yaml", "transport: serial\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid verbosity", args: []string{"--config", cfgPath, "--hosts", hosts, "--verbose", "5"}},
		{name: "missing explicit config", args: []string{"--config", filepath.Join(dir, "absent.yaml"), "--hosts", hosts}},
		{name: "invalid config", args: []string{"--config", badCfg, "--hosts", hosts}},
		{name: "invalid transport flag", args: []string{"--config", cfgPath, "--hosts", hosts, "--transport", "serial"}},
		{name: "missing host list", args: []string{"--config", cfgPath, "--hosts", filepath.Join(dir, "absent.csv")}},
		{name: "unsupported output", args: []string{"--config", cfgPath, "--hosts", hosts, "--output", filepath.Join(dir, "out.json")}},
		{name: "unwritable output", args: []string{"--config", cfgPath, "--hosts", hosts, "--output", filepath.Join(dir, "missing", "out.csv")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv("")
			env.runner.outputs = map[string]string{"sw1": switchOutput}
			assert.Error(t, env.run(append([]string{"collect"}, tt.args...)...))
		})
	}
}

func TestCollect_PasswordPromptWithoutInput(t *testing.T) {
	dir := t.TempDir()
	hosts := writeFile(t, dir, "hosts.txt", "sw1\n")
	cfgPath := writeFile(t, dir, "config.yaml", "username: admin\n")

	env := newTestEnv("")
	err := env.run("collect", "--config", cfgPath, "--hosts", hosts, "--output", filepath.Join(dir, "out.csv"))
	assert.Error(t, err, "closed input cannot answer the password prompt")
}

func TestParse(t *testing.T) {
	t.Run("stdin with default header", func(t *testing.T) {
		env := newTestEnv(switchOutput)
		require.NoError(t, env.run("parse", "--host", "core-1"))
		assert.Equal(t, "Hostname,Vlan ID,Name,Subnet\n"+
			"core-1,1,default,\n"+
			"core-1,10,USERS,10.0.10.0\n"+
			"core-1,20,VOICE,10.0.20.0\n"+
			"core-1,1002,fddi,default\n", env.out.String())
	})

	t.Run("file with exclude policy", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFile(t, dir, "sw1.txt", switchOutput)
		cfgPath := writeFile(t, dir, "config.yaml", "skip_policy: exclude\nexclude: [fddi, VOICE]\n")

		env := newTestEnv("")
		require.NoError(t, env.run("parse", "--config", cfgPath, input))
		assert.Equal(t, "Hostname,Vlan ID,Name,Subnet\n"+
			"local,1,default,\n"+
			"local,10,USERS,10.0.10.0\n", env.out.String())
	})

	t.Run("report file", func(t *testing.T) {
		dir := t.TempDir()
		output := filepath.Join(dir, "parsed.csv")
		env := newTestEnv(switchOutput)
		require.NoError(t, env.run("parse", "--output", output))
		assert.Len(t, readCSV(t, output), 5)
		assert.Empty(t, env.out.String())
	})

	t.Run("missing file", func(t *testing.T) {
		env := newTestEnv("")
		assert.Error(t, env.run("parse", filepath.Join(t.TempDir(), "absent.txt")))
	})
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")

	var rep entities.Report
	rep.Append(entities.HostResult{Host: "sw1", Records: []entities.VlanRecord{{Host: "sw1", VlanID: "10", Name: "USERS", Subnet: "10.0.10.0"}}})
	require.NoError(t, report.NewSQLiteSink(db).Write(rep))

	env := newTestEnv("")
	require.NoError(t, env.run("history", db))
	assert.Equal(t, "Hostname,Vlan ID,Name,Subnet\nsw1,10,USERS,10.0.10.0\n", env.out.String())

	assert.Error(t, newTestEnv("").run("history", filepath.Join(dir, "absent.db")))
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  admin  \nsecret"), &out)

	user, err := p.Ask("Enter username: ")
	require.NoError(t, err)
	assert.Equal(t, "admin", user)

	secret, err := p.AskSecret("Enter password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret", secret)
	assert.Equal(t, "Enter username: Enter password: ", out.String())

	_, err = p.AskSecret("Enter password: ")
	assert.Error(t, err)

	_, err = NewPrompter(strings.NewReader("\n"), &out).Ask("Enter username: ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}
