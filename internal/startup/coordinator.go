package startup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/picstream/picstream-go/internal/logger"
)

// State is one step of the boot sequence. Transitions only move forward;
// any failure lands in StateFailed and stays there.
type State string

const (
	StateInit             State = "init"
	StateDbConnecting     State = "db_connecting"
	StateDbReady          State = "db_ready"
	StateBrokerConnecting State = "broker_connecting"
	StateBrokerReady      State = "broker_ready"
	StateServing          State = "serving"
	StateFailed           State = "failed"
)

// Connector confirms one dependency is reachable. It must respect ctx.
type Connector func(ctx context.Context) error

// Coordinator brings dependencies up in a fixed order: database first, then
// broker. Consumers and servers must not start until Run has returned nil;
// both dependencies are assumed live from that point on, so a failure here
// aborts the process instead of surfacing as confusing mid-request errors.
type Coordinator struct {
	connectDB     Connector
	connectBroker Connector
	stepTimeout   time.Duration

	mu    sync.Mutex
	state State
}

func NewCoordinator(connectDB, connectBroker Connector, stepTimeout time.Duration) *Coordinator {
	return &Coordinator{
		connectDB:     connectDB,
		connectBroker: connectBroker,
		stepTimeout:   stepTimeout,
		state:         StateInit,
	}
}

// State returns the current boot state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Run walks the boot sequence and leaves the coordinator in StateServing, or
// in StateFailed with the wrapped cause.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.step(ctx, StateDbConnecting, StateDbReady, c.connectDB, "database"); err != nil {
		return err
	}
	if err := c.step(ctx, StateBrokerConnecting, StateBrokerReady, c.connectBroker, "broker"); err != nil {
		return err
	}

	c.setState(StateServing)
	logger.Info(ctx, "startup complete, all dependencies reachable")
	return nil
}

func (c *Coordinator) step(ctx context.Context, connecting, ready State, connect Connector, name string) error {
	c.setState(connecting)
	logger.Infof(ctx, "connecting to %s...", name)

	stepCtx, cancel := context.WithTimeout(ctx, c.stepTimeout)
	defer cancel()

	if err := connect(stepCtx); err != nil {
		c.setState(StateFailed)
		logger.Errorf(ctx, "❌  %s unreachable: %v", name, err)
		return fmt.Errorf("startup: %s unreachable: %w", name, err)
	}

	c.setState(ready)
	logger.Infof(ctx, "%s is reachable", name)
	return nil
}
