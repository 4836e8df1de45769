package notify

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technova/portfolio-api/internal/config"
	"github.com/technova/portfolio-api/internal/contact"
)

func testSender(t *testing.T) *SMTPSender {
	t.Helper()
	s := NewSMTPSender(config.SMTPConfig{
		Host: "smtp.example.com", Port: 587, User: "bot@example.com", Pass: "pw",
		Dest: "owner@example.com", FromName: "TechNova Contact",
	})
	require.NotNil(t, s)
	return s
}

// headerLines returns the header block of msg split into lines.
func headerLines(t *testing.T, msg string) []string {
	t.Helper()
	parts := strings.SplitN(msg, "\r\n\r\n", 2)
	require.Len(t, parts, 2)
	return strings.Split(parts[0], "\r\n")
}

func TestNewSMTPSender_RequiresFullConfig(t *testing.T) {
	require.Nil(t, NewSMTPSender(config.SMTPConfig{}))
	require.Nil(t, NewSMTPSender(config.SMTPConfig{Host: "h", User: "u", Pass: "p"}))
	require.NotNil(t, NewSMTPSender(config.SMTPConfig{Host: "h", User: "u", Pass: "p", Dest: "d"}))
}

func TestSubjectFallbacks(t *testing.T) {
	assert.Equal(t, "New contact from Ada", Subject(contact.Contact{Name: "Ada", Email: "ada@example.com"}))
	assert.Equal(t, "New contact from ada@example.com", Subject(contact.Contact{Email: "ada@example.com"}))
	assert.Equal(t, "New contact from visitor", Subject(contact.Contact{}))
}

func TestBuildMessage(t *testing.T) {
	s := testSender(t)
	msg := string(s.buildMessage(contact.Contact{Name: "Ada", Email: "ada@example.com", Message: "line1\nline2"}))

	assert.Contains(t, msg, "From: \"TechNova Contact\" <bot@example.com>\r\n")
	assert.Contains(t, msg, "To: owner@example.com\r\n")
	assert.Contains(t, msg, "Subject: New contact from Ada\r\n")
	parts := strings.SplitN(msg, "\r\n\r\n", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "Name: Ada\r\nEmail: ada@example.com\r\nMessage:\r\nline1\r\nline2", parts[1])
}

func TestBuildMessage_NameCannotAddHeaders(t *testing.T) {
	s := testSender(t)
	msg := string(s.buildMessage(contact.Contact{Name: "Eve\r\nBcc: victim@evil.test", Message: "hi"}))

	lines := headerLines(t, msg)
	require.Len(t, lines, 5)
	for _, l := range lines {
		assert.False(t, strings.HasPrefix(strings.ToLower(l), "bcc:"), "unexpected header %q", l)
	}
	assert.True(t, strings.HasPrefix(lines[2], "Subject: =?utf-8?q?"), lines[2])
}

func TestBuildMessage_NonASCIIName(t *testing.T) {
	s := testSender(t)
	msg := string(s.buildMessage(contact.Contact{Name: "Zoë", Message: "hi"}))

	lines := headerLines(t, msg)
	assert.Equal(t, "Subject: =?utf-8?q?New_contact_from_Zo=C3=AB?=", lines[2])
}

func TestBuildMessage_DestinationStaysOneHeader(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "h", User: "bot@example.com", Pass: "p", Dest: "owner@example.com\r\nBcc: x@y.z"})
	require.NotNil(t, s)

	lines := headerLines(t, string(s.buildMessage(contact.Contact{Name: "A", Message: "hi"})))
	require.Len(t, lines, 5)
	assert.Equal(t, "To: owner@example.com  Bcc: x@y.z", lines[1])
}

func listenerConfig(t *testing.T, ln net.Listener) config.SMTPConfig {
	t.Helper()
	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return config.SMTPConfig{Host: host, Port: p, User: "bot@example.com", Pass: "pw", Dest: "owner@example.com", FromName: "TechNova Contact"}
}

func TestSend_SilentServerHonoursDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// accept and never greet
	held := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			held <- conn
		}
	}()
	defer func() {
		select {
		case c := <-held:
			c.Close()
		default:
		}
	}()

	s := NewSMTPSender(listenerConfig(t, ln))
	require.NotNil(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Send(ctx, contact.Contact{Name: "A", Message: "hi"}) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Send did not return after its context deadline")
	}
}

// fakeSMTP answers a single session with canned replies and reports the
// DATA payload.
func fakeSMTP(ln net.Listener, data chan<- string) {
	conn, err := ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }

	reply("220 fake ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(cmd, "EHLO"):
			reply("250-fake")
			reply("250 AUTH PLAIN")
		case strings.HasPrefix(cmd, "AUTH"):
			reply("235 accepted")
		case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
			reply("250 ok")
		case cmd == "DATA":
			reply("354 go ahead")
			var b strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				b.WriteString(l)
			}
			data <- b.String()
			reply("250 queued")
		case cmd == "QUIT":
			reply("221 bye")
			return
		default:
			reply("502 unknown")
		}
	}
}

func TestSend_DeliversOverPlainSMTP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	data := make(chan string, 1)
	go fakeSMTP(ln, data)

	s := NewSMTPSender(listenerConfig(t, ln))
	require.NotNil(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Send(ctx, contact.Contact{Name: "Ada", Email: "ada@example.com", Message: "hello"}))

	select {
	case got := <-data:
		assert.Contains(t, got, "Subject: New contact from Ada\r\n")
		assert.Contains(t, got, "Message:\r\nhello")
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}
