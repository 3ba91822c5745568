// Package server implements the TCP front-end: a bounded worker pool accepts and
// processes client connections against the dependency Store. Connections are
// handed off from a single accept loop to a fixed-size pool of long-lived
// workers over a bounded channel — Accept keeps running, but enqueueing a
// connection blocks once the pool is saturated, which is the admission-control
// mechanism rather than an outright rejection.
package server

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"package-indexer/internal/metrics"
	"package-indexer/internal/store"
	"package-indexer/internal/wire"
)

// DefaultPoolSize is the default number of long-lived worker goroutines.
const DefaultPoolSize = 100

// Server manages TCP connections and coordinates with the Store through a
// fixed-size worker pool.
type Server struct {
	store    *store.Store
	metrics  *metrics.Metrics
	log      *zap.Logger
	addr     string
	poolSize int

	listener  net.Listener
	workQueue chan net.Conn

	ctx    context.Context
	cancel context.CancelFunc
	eg     *errgroup.Group

	ready chan struct{} // closed once the listener is bound (or failed to bind)
}

// NewServer creates a new Server instance. poolSize <= 0 falls back to DefaultPoolSize.
func NewServer(addr string, st *store.Store, m *metrics.Metrics, log *zap.Logger, poolSize int) *Server {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &Server{
		store:     st,
		metrics:   m,
		log:       log,
		addr:      addr,
		poolSize:  poolSize,
		workQueue: make(chan net.Conn, poolSize),
		ready:     make(chan struct{}),
	}
}

// Start begins listening for connections on the configured address.
func (s *Server) Start() error {
	return s.StartWithContext(context.Background())
}

// StartWithContext begins listening for connections with context support for
// graceful shutdown. Blocks until the context is cancelled (or Shutdown is
// called) and the accept loop and every worker have returned. Accept errors
// are logged and retried; they do not stop the server.
func (s *Server) StartWithContext(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		close(s.ready)
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = l
	close(s.ready)

	// Close the listener when the context is cancelled to unblock Accept.
	go func() {
		<-s.ctx.Done()
		_ = s.listener.Close()
	}()

	s.eg, _ = errgroup.WithContext(context.Background())
	for i := 0; i < s.poolSize; i++ {
		s.eg.Go(s.runWorker)
	}
	s.eg.Go(s.acceptLoop)

	s.log.Info("package indexer server listening", zap.String("addr", s.addr), zap.Int("pool_size", s.poolSize))

	return s.eg.Wait()
}

// acceptLoop accepts connections and hands them to the worker pool. It is the
// sole writer to workQueue and closes it once it returns, letting workers drain
// any already-queued connections before exiting.
func (s *Server) acceptLoop() error {
	defer close(s.workQueue)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return nil
			default:
				s.log.Warn("accept failed", zap.Error(err))
				continue
			}
		}

		s.metrics.ConnectionsTotal.Inc()

		// Blocks when the pool is saturated — this is the admission-control
		// mechanism; Accept itself never refuses a connection.
		select {
		case s.workQueue <- conn:
		case <-s.ctx.Done():
			_ = conn.Close()
			return nil
		}
	}
}

// runWorker is one long-lived pool worker: it processes connections to
// completion, one at a time, until the work queue is drained and closed.
func (s *Server) runWorker() error {
	for conn := range s.workQueue {
		s.handleConnection(conn)
	}
	return nil
}

// handleConnection processes all messages from a single client connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			s.log.Debug("error closing connection", zap.Error(err))
		}
	}()
	s.serveConn(s.ctx, conn)
}

// serveConn contains the core connection processing loop: read a frame, parse,
// dispatch to the Store, write exactly one response line, repeat. Responses are
// written in the order their requests were read, preserving per-connection order.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	s.log.Debug("client connected", zap.String("remote", remote))

	reader := bufio.NewReader(conn)

	// Background goroutine monitors for context cancellation and force-closes the
	// connection to unblock ReadString, enabling shutdown under load. A
	// connection otherwise stays open, and its read indefinitely pending,
	// however long the client goes silent between requests.
	doneCh := make(chan struct{})
	defer close(doneCh)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-doneCh:
		}
	}()

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				s.log.Debug("client disconnected", zap.String("remote", remote))
			} else {
				s.log.Debug("read error", zap.String("remote", remote), zap.Error(err))
			}
			return
		}
		// Framing strips the newline delimiter; the parser never sees it. A bare
		// \r immediately preceding \n is preserved as part of the stripped token;
		// clients are expected to send a bare \n.
		line = line[:len(line)-1]

		s.metrics.CommandsProcessed.Inc()
		response := s.processLine(line)

		if _, err := conn.Write([]byte(response.String())); err != nil {
			s.log.Debug("write error", zap.String("remote", remote), zap.Error(err))
			return
		}
	}
}

// processLine parses and executes a single request line, mapping the outcome
// to the wire.Response the caller writes back to the client.
func (s *Server) processLine(line string) wire.Response {
	cmd, err := wire.ParseCommand(line)
	if err != nil {
		s.log.Debug("malformed request", zap.Error(err), zap.String("line", line))
		s.metrics.ErrorsTotal.Inc()
		return wire.ERROR
	}

	switch cmd.Type {
	case wire.IndexCommand:
		if s.store.Index(cmd.Package, cmd.Dependencies) {
			s.metrics.PackagesIndexed.Inc()
			s.refreshGauge()
			return wire.OK
		}
		return wire.FAIL

	case wire.RemoveCommand:
		switch s.store.Remove(cmd.Package) {
		case store.RemoveOK, store.RemoveNotIndexed:
			s.refreshGauge()
			return wire.OK
		case store.RemoveBlocked:
			return wire.FAIL
		}
		return wire.ERROR // unreachable

	case wire.QueryCommand:
		if s.store.Query(cmd.Package) {
			return wire.OK
		}
		return wire.FAIL

	default:
		s.log.Error("unknown command type after successful parse", zap.Int("type", int(cmd.Type)))
		s.metrics.ErrorsTotal.Inc()
		return wire.ERROR
	}
}

func (s *Server) refreshGauge() {
	indexed, _, _ := s.store.Stats()
	s.metrics.IndexedPackages.Set(float64(indexed))
}

// Addr returns the address the listener is bound to, once Start(WithContext) has
// returned from net.Listen. Primarily useful in tests that listen on ":0".
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops the server: it cancels the server context, which closes the
// listener and force-closes every open connection (queued connections are
// closed as workers pick them up), then waits for the accept loop and workers
// to return. If ctx expires first, it returns ctx.Err() without waiting further.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}

	done := make(chan struct{})
	go func() {
		if s.eg != nil {
			_ = s.eg.Wait()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
