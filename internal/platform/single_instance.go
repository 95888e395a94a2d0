package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net"
	"os/user"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateMessage = "activate"

// InstanceGuard holds the single-instance lock. The lock is a localhost
// listener; later instances connect to it to ask the holder to come forward.
type InstanceGuard struct {
	listener net.Listener
	address  string
	done     chan struct{}
	once     sync.Once
}

// AcquireSingleInstance binds a port derived from appName and the current
// user, so each user runs at most one instance.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	return acquireOnAddress(instanceAddress(appName))
}

func acquireOnAddress(address string) (*InstanceGuard, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address, done: make(chan struct{})}, nil
}

// OnActivate runs handler each time another instance asks this one to show itself.
func (guard *InstanceGuard) OnActivate(handler func()) {
	if guard == nil || guard.listener == nil || handler == nil {
		return
	}
	go guard.serve(handler)
}

func (guard *InstanceGuard) serve(handler func()) {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			select {
			case <-guard.done:
			default:
				slog.Warn("instance guard accept", slog.String("error", err.Error()))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		line, _ := bufio.NewReader(conn).ReadString('\n')
		_ = conn.Close()
		if strings.TrimSpace(line) == activateMessage {
			handler()
		}
	}
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.once.Do(func() {
		close(guard.done)
		err = guard.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// ActivateRunningInstance asks the instance holding appName's lock to show itself.
func ActivateRunningInstance(appName string) error {
	return activateAddress(instanceAddress(appName))
}

func activateAddress(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return fmt.Errorf("contact running instance: %w", err)
	}
	defer conn.Close()
	if _, err := fmt.Fprintln(conn, activateMessage); err != nil {
		return fmt.Errorf("contact running instance: %w", err)
	}
	return nil
}

func instanceAddress(appName string) string {
	name := appName
	if current, err := user.Current(); err == nil {
		name += "/" + current.Uid
	}
	return fmt.Sprintf("127.0.0.1:%d", portFromName(name))
}

func portFromName(name string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(name))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
