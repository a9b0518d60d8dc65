package futures_wss

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map"
	"github.com/sourcegraph/conc"

	"okex-futures-go/adapter/client"
	"okex-futures-go/adapter/convert"
	"okex-futures-go/adapter/text"
	"okex-futures-go/adapter/timer"
	"okex-futures-go/core/exch"
	"okex-futures-go/core/log"
	"okex-futures-go/core/request"
)

type Status int32

const (
	StatusConnecting Status = iota
	StatusOpen
	StatusReconnecting
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	case StatusReconnecting:
		return "reconnecting"
	case StatusClosed:
		return "closed"
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

type FuturesClient struct {
	//sign
	Sign string
	//param
	Ctx    context.Context
	cancel context.CancelFunc
	cfg    Config

	signer     *Signer
	correlator *ChannelCorrelator
	registry   *SubscriptionRegistry
	limiter    *request.Limiter
	mh         *MsgHandler
	// raw frame listeners, id -> func([]byte)
	listeners cmap.ConcurrentMap
	errs      chan error
	wg        conc.WaitGroup

	mu  sync.Mutex
	wss client.Transport
	hb  *Heartbeat

	status       atomic.Int32
	reconnecting atomic.Bool
	logined      atomic.Bool
	//reconnect id
	clientId atomic.Int64
	//连接时间
	connectTime atomic.Int64

	pmu    sync.RWMutex
	params tradeParams

	// frames being dispatched to handlers
	dispatching atomic.Int32
}

// NewFuturesClient reads credentials and the connection sign from the ctx bag
// built by exch.ApiCtx. It does not connect.
func NewFuturesClient(ctx context.Context, cfg Config) *FuturesClient {
	sign := text.GetString(ctx, exch.ConnSign)
	if sign == "" {
		sign = OkexFuturesU
	}
	ctx, cancel := context.WithCancel(ctx)
	ws := &FuturesClient{
		Sign:      sign,
		Ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		signer:    NewSigner(text.GetString(ctx, exch.Key), text.GetString(ctx, exch.Secret)),
		limiter:   request.NewLimiter(cfg.RequestRate),
		mh:        NewMsgHandler(),
		listeners: cmap.New(),
		errs:      make(chan error, exch.MsgChannelLen),
		params:    defaultTradeParams(),
	}
	if ws.cfg.Dial == nil {
		ws.cfg.Dial = ws.dialSocket
	}
	ws.correlator = NewChannelCorrelator(sign, ws.sendSigned)
	ws.registry = NewSubscriptionRegistry(sign, ws.send)
	return ws
}

// Connect opens a transport, starts the heartbeat and the read loop, replays
// subscriptions and logs in again when a previous session had.
func (ws *FuturesClient) Connect() error {
	if !ws.setStatus(StatusConnecting) {
		return ErrClosed
	}
	wss, err := ws.dial()
	if err != nil {
		return err
	}
	hb := NewHeartbeat(ws.Sign, ws.cfg.PingInterval, ws.cfg.MissedPongs,
		func() error { return ws.write(wss, &ClientRequest{Event: EventPing}) },
		func() { ws.Reconnect(ws.cfg.HeartbeatReconnectWait) })

	ws.mu.Lock()
	if ws.Status() == StatusClosed {
		ws.mu.Unlock()
		_ = wss.Close()
		return ErrClosed
	}
	ws.wss, ws.hb = wss, hb
	ws.mu.Unlock()

	ws.clientId.Add(1)
	ws.connectTime.Store(timer.MicNow())
	ws.setStatus(StatusOpen)
	// wss is current from here on, its loss must be able to schedule the next attempt
	ws.reconnecting.Store(false)
	ws.wg.Go(func() { ws.ReceivedMsg(wss, hb) })
	ws.wg.Go(hb.Run)
	log.Infoln(log.Conn, ws.Sign, "okex FuturesClient connected, client id", ws.ClientId())

	if n := ws.registry.Replay(); n > 0 {
		log.Infoln(log.Conn, ws.Sign, "okex FuturesClient replayed", n, "channels")
	}
	if ws.logined.Load() {
		ws.wg.Go(func() {
			resp, err := ws.Login().Wait(ws.Ctx)
			if err != nil {
				log.Warnln(log.Conn, ws.Sign, "okex relogin error", err)
				return
			}
			if !loginAccepted(resp) {
				log.Warnln(log.Conn, ws.Sign, "okex relogin declined")
			}
		})
	}
	return nil
}

func (ws *FuturesClient) dial() (client.Transport, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = ws.cfg.DialBackoff
	bo.MaxInterval = ws.cfg.ReconnectWait
	for attempt := uint(1); ; attempt++ {
		wss, err := ws.cfg.Dial(ws.Ctx)
		if err == nil {
			return wss, nil
		}
		if ws.Ctx.Err() != nil {
			return nil, ErrClosed
		}
		ws.reportError(fmt.Errorf("dial %s: %w", ws.cfg.WssUrl, err))
		if attempt >= ws.cfg.DialRetries {
			return nil, err
		}
		sleep := bo.NextBackOff()
		if sleep == backoff.Stop {
			sleep = bo.MaxInterval
		}
		select {
		case <-ws.Ctx.Done():
			return nil, ErrClosed
		case <-time.After(sleep):
		}
	}
}

func (ws *FuturesClient) dialSocket(ctx context.Context) (client.Transport, error) {
	ctx = context.WithValue(ctx, client.WssUrl, ws.cfg.WssUrl)
	ctx = context.WithValue(ctx, client.ProxyUrl, ws.cfg.ProxyUrl)
	ctx = context.WithValue(ctx, client.Timeout, WssTimeout)
	ctx = context.WithValue(ctx, client.MsgLen, exch.WSChannelLen)
	ctx = context.WithValue(ctx, client.Id, ws.Sign)
	sc, err := client.NewWssSocket(ctx)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// ReceivedMsg dispatches frames of one transport. When that transport is
// still the current one at the end of its stream, a reconnect is scheduled.
func (ws *FuturesClient) ReceivedMsg(wss client.Transport, hb *Heartbeat) {
	for msg := range wss.Messages() {
		ws.handleMessage(msg, hb)
	}
	ws.mu.Lock()
	current := ws.wss == wss
	ws.mu.Unlock()
	if !current {
		return
	}
	err := wss.Err()
	log.Warnln(log.Conn, ws.Sign, "okex FuturesClient stream ended", err)
	if err != nil {
		ws.reportError(fmt.Errorf("transport: %w", err))
	}
	ws.Reconnect(ws.cfg.ReconnectWait)
}

func (ws *FuturesClient) handleMessage(msg []byte, hb *Heartbeat) {
	ws.dispatching.Add(1)
	defer ws.dispatching.Add(-1)
	for item := range ws.listeners.IterBuffered() {
		item.Val.(func([]byte))(msg)
	}
	frame, err := ws.mh.ReadMessage(msg)
	if err != nil {
		ws.reportError(err)
		return
	}
	if frame.Event == EventPong {
		hb.Pong()
		return
	}
	if len(frame.Entries) == 0 {
		return
	}
	ws.correlator.Resolve(frame.Entries)
	ws.registry.Dispatch(frame.Entries)
}

// Reconnect drops the current transport and connects again after delay.
// Triggers that arrive while an attempt is pending are collapsed into it and
// return false. Requests waiting for a reply fail with ErrConnectionLost.
func (ws *FuturesClient) Reconnect(delay time.Duration) bool {
	if ws.Status() == StatusClosed {
		return false
	}
	if !ws.reconnecting.CompareAndSwap(false, true) {
		log.Debugln(log.Conn, ws.Sign, "okex reconnect already pending")
		return false
	}
	ws.setStatus(StatusReconnecting)

	ws.mu.Lock()
	old, hb := ws.wss, ws.hb
	ws.wss, ws.hb = nil, nil
	ws.mu.Unlock()
	if hb != nil {
		hb.Stop()
	}
	if old != nil {
		_ = old.Close()
	}
	if n := ws.correlator.RejectAll(ErrConnectionLost); n > 0 {
		log.Warnln(log.Conn, ws.Sign, "okex reconnect rejected", n, "pending requests")
	}
	log.Warnln(log.Conn, ws.Sign, "okex FuturesClient reconnect in", delay)

	ws.wg.Go(func() {
		select {
		case <-ws.Ctx.Done():
			ws.reconnecting.Store(false)
			return
		case <-time.After(delay):
		}
		err := ws.Connect()
		if err == nil {
			return
		}
		ws.reconnecting.Store(false)
		if errors.Is(err, ErrClosed) {
			return
		}
		ws.reportError(fmt.Errorf("reconnect: %w", err))
		ws.Reconnect(ws.cfg.ReconnectWait)
	})
	return true
}

// Close stops the client for good and waits for its goroutines. Called from a
// handler it returns without waiting for the read loop the handler runs on.
func (ws *FuturesClient) Close() error {
	if Status(ws.status.Swap(int32(StatusClosed))) == StatusClosed {
		return nil
	}
	ws.cancel()
	ws.mu.Lock()
	old, hb := ws.wss, ws.hb
	ws.wss, ws.hb = nil, nil
	ws.mu.Unlock()
	if hb != nil {
		hb.Stop()
	}
	var err error
	if old != nil {
		err = old.Close()
	}
	ws.correlator.RejectAll(ErrClosed)
	if ws.dispatching.Load() == 0 {
		ws.wg.Wait()
	}
	log.Infoln(log.Conn, ws.Sign, "okex FuturesClient closed")
	return err
}

func (ws *FuturesClient) Status() Status {
	return Status(ws.status.Load())
}

// setStatus never leaves StatusClosed
func (ws *FuturesClient) setStatus(s Status) bool {
	for {
		cur := ws.status.Load()
		if Status(cur) == StatusClosed {
			return false
		}
		if ws.status.CompareAndSwap(cur, int32(s)) {
			return true
		}
	}
}

func (ws *FuturesClient) IsLogined() bool {
	return ws.logined.Load()
}

// ClientId counts successful connects
func (ws *FuturesClient) ClientId() int64 {
	return ws.clientId.Load()
}

// ConnectTime is the unix millisecond of the last successful connect
func (ws *FuturesClient) ConnectTime() int64 {
	return ws.connectTime.Load()
}

// Requests counts the frames written in the current second, minute and hour
func (ws *FuturesClient) Requests() (sec, minute, hour int64) {
	return ws.limiter.Times.Snapshot()
}

// Errors reports malformed frames and transport failures. Errors are dropped
// when nobody reads and the buffer is full.
func (ws *FuturesClient) Errors() <-chan error {
	return ws.errs
}

func (ws *FuturesClient) reportError(err error) {
	log.Errorln(log.Wss, ws.Sign, err)
	select {
	case ws.errs <- err:
	default:
	}
}

func (ws *FuturesClient) Subscribe(opt SubscriptionOption) (*Subscription, error) {
	return ws.registry.Subscribe(opt)
}

func (ws *FuturesClient) Unsubscribe(id string) bool {
	return ws.registry.Unsubscribe(id)
}

func (ws *FuturesClient) Subscriptions() []*Subscription {
	return ws.registry.Subscriptions()
}

// Listen taps every raw inbound frame
func (ws *FuturesClient) Listen(handler func([]byte)) string {
	id := uuid.NewString()
	ws.listeners.Set(id, handler)
	return id
}

func (ws *FuturesClient) Unlisten(id string) bool {
	if !ws.listeners.Has(id) {
		return false
	}
	ws.listeners.Remove(id)
	return true
}

// Login authenticates the session. An accepted login is repeated after every reconnect.
func (ws *FuturesClient) Login() *Future {
	inner := ws.correlator.SendToChannel(ChannelLogin, &ClientRequest{Event: EventLogin, Parameters: map[string]string{}})
	out := newFuture(ChannelLogin)
	go func() {
		<-inner.Done()
		if inner.err == nil && loginAccepted(inner.resp) {
			ws.logined.Store(true)
			log.Infoln(log.Conn, ws.Sign, "okex login accepted")
		}
		out.settle(inner.resp, inner.err)
	}()
	return out
}

func loginAccepted(resp []ServerResponse) bool {
	if len(resp) == 0 {
		return false
	}
	v, ok := resp[0].Result().CheckGet("result")
	return ok && convert.GetBool(v.Interface())
}

// Send writes req, adding api_key and sign to its parameters when sign is set
func (ws *FuturesClient) Send(req *ClientRequest, sign bool) error {
	if sign {
		return ws.sendSigned(req)
	}
	return ws.send(req)
}

// SendRaw writes frame untouched
func (ws *FuturesClient) SendRaw(frame []byte) error {
	wss := ws.transport()
	if wss == nil {
		return ErrNotConnected
	}
	return ws.writeRaw(wss, frame)
}

func (ws *FuturesClient) sendSigned(req *ClientRequest) error {
	if !ws.signer.Enabled() {
		return fmt.Errorf("%w: api key and secret required", ErrInvalidParameter)
	}
	signed := *req
	signed.Parameters = ws.signer.SignParams(req.Parameters)
	return ws.send(&signed)
}

func (ws *FuturesClient) send(req *ClientRequest) error {
	wss := ws.transport()
	if wss == nil {
		return ErrNotConnected
	}
	return ws.write(wss, req)
}

func (ws *FuturesClient) write(wss client.Transport, req *ClientRequest) error {
	msg, err := req.Marshal()
	if err != nil {
		return err
	}
	return ws.writeRaw(wss, msg)
}

func (ws *FuturesClient) writeRaw(wss client.Transport, msg []byte) error {
	if err := ws.limiter.Wait(ws.Ctx); err != nil {
		return err
	}
	return wss.Send(msg)
}

func (ws *FuturesClient) transport() client.Transport {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.wss
}
