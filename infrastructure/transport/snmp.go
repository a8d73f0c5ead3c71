package transport

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/gosnmp/gosnmp"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

const (
	// OIDVtpVlanName is CISCO-VTP-MIB::vtpVlanName, indexed by domain and VLAN id
	OIDVtpVlanName = ".1.3.6.1.4.1.9.9.46.1.3.1.1.4"
	// OIDSysDescr is SNMPv2-MIB::sysDescr.0
	OIDSysDescr = ".1.3.6.1.2.1.1.1.0"

	DefaultCommunity = "public"
)

// snmpSession is the part of *gosnmp.GoSNMP used by SNMPClient
type snmpSession interface {
	Connect() error
	BulkWalkAll(rootOid string) ([]gosnmp.SnmpPDU, error)
	Get(oids []string) (*gosnmp.SnmpPacket, error)
}

// SNMPClient answers VLAN listing commands from the VTP MIB instead of a CLI.
// Output is rendered in the "show vlan brief" layout so it goes through the
// same extraction as CLI sessions.
type SNMPClient struct {
	config     entities.SwitchConfig
	logger     *slog.Logger
	snmp       *gosnmp.GoSNMP
	session    snmpSession
	newSession func(entities.SwitchConfig) (*gosnmp.GoSNMP, snmpSession)
}

// NewSNMPClient creates a new SNMP v2c client with the given configuration
func NewSNMPClient(cfg entities.SwitchConfig, logger *slog.Logger) *SNMPClient {
	return &SNMPClient{config: cfg, logger: orDiscard(logger), newSession: newGoSNMP}
}

func newGoSNMP(cfg entities.SwitchConfig) (*gosnmp.GoSNMP, snmpSession) {
	port := cfg.Port
	if port == 0 {
		port = cfg.DefaultPort()
	}
	community := cfg.SnmpCommunity
	if community == "" {
		community = DefaultCommunity
	}
	g := &gosnmp.GoSNMP{
		Target:         cfg.Target,
		Port:           uint16(port),
		Transport:      "udp",
		Community:      community,
		Version:        gosnmp.Version2c,
		Timeout:        cfg.EffectiveTimeout(),
		Retries:        1,
		MaxRepetitions: 50,
	}
	return g, g
}

// Connect opens the UDP socket; SNMP has no login so failures surface on the first request
func (c *SNMPClient) Connect() error {
	if c.session != nil {
		return nil
	}
	g, session := c.newSession(c.config)
	if err := session.Connect(); err != nil {
		return fmt.Errorf("failed to open SNMP session to %s: %w", c.config.Target, err)
	}
	c.snmp = g
	c.session = session
	if c.config.IsDebugEnabled() {
		c.logger.Debug("connected via SNMP", "host", c.config.Target)
	}
	return nil
}

// Disconnect closes the SNMP socket
func (c *SNMPClient) Disconnect() {
	if c.snmp != nil && c.snmp.Conn != nil {
		c.snmp.Conn.Close()
	}
	c.snmp = nil
	c.session = nil
}

func (c *SNMPClient) IsConnected() bool {
	return c.session != nil
}

// ExecuteCommand serves "show vlan" variants and "show version"
func (c *SNMPClient) ExecuteCommand(cmd string) (string, error) {
	if c.session == nil {
		return "", fmt.Errorf("not connected to %s", c.config.Target)
	}
	if c.config.IsDebugEnabled() {
		c.logger.Debug("executing", "host", c.config.Target, "command", cmd, "transport", entities.TransportSNMP)
	}

	var (
		output string
		err    error
	)
	switch normalized := strings.Join(strings.Fields(strings.ToLower(cmd)), " "); normalized {
	case "show vlan brief", "show vlan":
		output, err = c.vlanBrief()
	case "show version":
		output, err = c.sysDescr()
	default:
		return "", fmt.Errorf("%w over snmp: %s", ErrUnsupportedCommand, cmd)
	}
	if err != nil {
		return "", fmt.Errorf("error executing %s: %w", cmd, err)
	}
	if c.config.IsRawOutputEnabled() {
		c.logger.Info("command output", "host", c.config.Target, "command", cmd, "output", output)
	}
	return output, nil
}

func (c *SNMPClient) vlanBrief() (string, error) {
	pdus, err := c.session.BulkWalkAll(OIDVtpVlanName)
	if err != nil {
		return "", err
	}
	vlans := make(map[int]string, len(pdus))
	for _, pdu := range pdus {
		id, ok := vlanIndex(pdu.Name)
		if !ok {
			continue
		}
		vlans[id] = pduString(pdu)
	}
	return renderVlanBrief(vlans), nil
}

func (c *SNMPClient) sysDescr() (string, error) {
	packet, err := c.session.Get([]string{OIDSysDescr})
	if err != nil {
		return "", err
	}
	if packet == nil || len(packet.Variables) == 0 {
		return "", nil
	}
	return pduString(packet.Variables[0]), nil
}

// vlanIndex returns the VLAN id, the last arc of a vtpVlanName instance OID
func vlanIndex(oid string) (int, bool) {
	if !strings.HasPrefix(oid, OIDVtpVlanName+".") {
		return 0, false
	}
	arcs := strings.Split(strings.TrimPrefix(oid, OIDVtpVlanName+"."), ".")
	id, err := strconv.Atoi(arcs[len(arcs)-1])
	if err != nil || id < 1 || id > 4094 {
		return 0, false
	}
	return id, true
}

func pduString(pdu gosnmp.SnmpPDU) string {
	switch v := pdu.Value.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// renderVlanBrief lays VLANs out like the IOS "show vlan brief" table,
// including its blank, title and ruler header lines
func renderVlanBrief(vlans map[int]string) string {
	ids := make([]int, 0, len(vlans))
	for id := range vlans {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("VLAN Name                             Status    Ports\n")
	b.WriteString("---- -------------------------------- --------- -------------------------------\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "%-4d %-32s active\n", id, vlans[id])
	}
	return b.String()
}
