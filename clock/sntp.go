package clock

import (
	"encoding/binary"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultNTPServer is queried when no server address is given.
const DefaultNTPServer = "pool.ntp.org:123"

// sntpPacketSize is the fixed size of an SNTPv3 packet.
const sntpPacketSize = 48

// ntpEpochOffset is the number of seconds between the NTP epoch
// (1900-01-01) and the Unix epoch (1970-01-01).
const ntpEpochOffset = 2208988800

// SNTP learns time from an NTP server over UDP and serves it from a
// cached offset against the local clock. Until the first successful
// Resync, Now returns ErrUnavailable.
//
// The zero value is not usable; create instances with NewSNTP. All
// methods are safe for concurrent use.
type SNTP struct {
	mu     sync.RWMutex
	addr   string
	offset time.Duration
	synced bool
	logger *logrus.Logger
}

// NewSNTP creates an SNTP source querying the given "host:port" address.
// An empty address selects DefaultNTPServer.
func NewSNTP(addr string) *SNTP {
	if addr == "" {
		addr = DefaultNTPServer
	}
	return &SNTP{
		addr:   addr,
		logger: logrus.StandardLogger(),
	}
}

// Now returns the network-synchronized time, or ErrUnavailable when no
// synchronization has succeeded yet.
func (c *SNTP) Now() (time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.synced {
		return time.Time{}, errors.Wrap(ErrUnavailable, "no successful sync with "+c.addr)
	}
	return time.Now().Add(c.offset), nil
}

// Resync performs one SNTP exchange with the server, bounded by timeout,
// and caches the measured offset on success.
func (c *SNTP) Resync(timeout time.Duration) error {
	offset, err := c.query(timeout)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"server": c.addr,
			"error":  err,
		}).Warn("Clock resynchronization failed")
		return err
	}

	c.mu.Lock()
	c.offset = offset
	c.synced = true
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"server": c.addr,
		"offset": offset,
	}).Info("Clock resynchronized")

	return nil
}

// query runs a single request/response exchange and returns the offset of
// the server clock relative to the local clock.
func (c *SNTP) query(timeout time.Duration) (time.Duration, error) {
	conn, err := net.DialTimeout("udp", c.addr, timeout)
	if err != nil {
		return 0, errors.Wrapf(err, "dial NTP server %s", c.addr)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return 0, errors.Wrap(err, "set NTP deadline")
	}

	// LI=0, VN=3, Mode=3 (client).
	request := make([]byte, sntpPacketSize)
	request[0] = 0x1B

	sent := time.Now()
	if _, err := conn.Write(request); err != nil {
		return 0, errors.Wrap(err, "send NTP request")
	}

	response := make([]byte, sntpPacketSize)
	if _, err := conn.Read(response); err != nil {
		return 0, errors.Wrap(err, "read NTP response")
	}
	received := time.Now()

	// Transmit timestamp: seconds and fraction since the NTP epoch.
	secs := binary.BigEndian.Uint32(response[40:44])
	frac := binary.BigEndian.Uint32(response[44:48])
	if secs == 0 {
		return 0, errors.New("NTP response carries zero transmit timestamp")
	}

	nanos := int64(secs-ntpEpochOffset)*int64(time.Second) +
		(int64(frac)*int64(time.Second))>>32
	server := time.Unix(0, nanos)

	// Approximate the server clock at the moment of receipt by crediting
	// half the round trip to the response leg.
	rtt := received.Sub(sent)
	return server.Add(rtt / 2).Sub(received), nil
}
