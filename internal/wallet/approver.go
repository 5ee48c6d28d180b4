package wallet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"golang.org/x/term"

	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
)

// Request describes what the application is asking the user to approve.
type Request struct {
	Method   string
	Accounts []common.Address
}

type Approver interface {
	Approve(ctx context.Context, req Request) (bool, error)
}

type ApproverFunc func(ctx context.Context, req Request) (bool, error)

func (f ApproverFunc) Approve(ctx context.Context, req Request) (bool, error) { return f(ctx, req) }

// AutoApprove grants every request.
var AutoApprove = ApproverFunc(func(context.Context, Request) (bool, error) { return true, nil })

// TerminalApprover asks on the controlling terminal. Without a terminal the
// request is rejected. One reader goroutine serves every prompt, so an
// abandoned prompt never swallows the answer to the next one.
type TerminalApprover struct {
	In  *os.File
	Out io.Writer

	isTerminal func(fd int) bool
	once       sync.Once
	lines      chan string
}

func NewTerminalApprover() *TerminalApprover {
	return &TerminalApprover{In: os.Stdin, Out: os.Stderr}
}

func (a *TerminalApprover) Approve(ctx context.Context, req Request) (bool, error) {
	isTerminal := a.isTerminal
	if isTerminal == nil {
		isTerminal = term.IsTerminal
	}
	if a.In == nil || !isTerminal(int(a.In.Fd())) {
		log.Warn("no terminal to confirm account request, rejecting", "method", req.Method)
		return false, nil
	}

	a.once.Do(a.startReader)
	a.drain()

	_, _ = fmt.Fprintf(a.Out, "\n%s requests access to %d account(s):\n", constants.AppName, len(req.Accounts))
	for _, acct := range req.Accounts {
		_, _ = fmt.Fprintf(a.Out, "  %s\n", acct.Hex())
	}
	_, _ = fmt.Fprint(a.Out, "Allow? [y/N]: ")

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(a.Out)
		return false, ctx.Err()
	case line, ok := <-a.lines:
		if !ok {
			return false, nil
		}
		return parseAnswer(line), nil
	}
}

func (a *TerminalApprover) startReader() {
	a.lines = make(chan string, 1)
	go func() {
		defer close(a.lines)
		r := bufio.NewReader(a.In)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				a.lines <- line
			}
			if err != nil {
				return
			}
		}
	}()
}

// drain discards input typed while no prompt was open.
func (a *TerminalApprover) drain() {
	for {
		select {
		case _, ok := <-a.lines:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func parseAnswer(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
