package client

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"okex-futures-go/adapter/text"
	"okex-futures-go/core/log"
)

var ErrSocketClosed = errors.New("wss socket closed")

type WssSocket struct {
	Ctx       context.Context
	Id        string
	wssUrl    string
	Dialer    *websocket.Dialer
	Connect   *websocket.Conn
	Keepalive bool
	Timeout   time.Duration
	MsgLen    int64
	MsgQueue  chan []byte

	status       int32
	lastResponse int64
	wmu          sync.Mutex
	emu          sync.Mutex
	err          error
	done         chan struct{}
	closeOnce    sync.Once
}

// NewWssSocket dials the url stored under WssUrl in ctx and starts reading.
// Cancelling ctx closes the socket.
func NewWssSocket(ctx context.Context) (*WssSocket, error) {
	sc := &WssSocket{Ctx: ctx}
	sc.Init()
	if err := sc.Connent(); err != nil {
		return nil, err
	}
	go sc.ReadMsg()
	go sc.watch()
	if sc.Keepalive {
		go sc.PingPong()
	}
	return sc, nil
}

func (sc *WssSocket) Init() {
	d := *websocket.DefaultDialer
	sc.Dialer = &d
	if text.GetBool(sc.Ctx, Insecure) {
		sc.Dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	pUrl := text.GetString(sc.Ctx, ProxyUrl)
	if pUrl != "" {
		if uProxy, err := url.Parse(pUrl); err == nil {
			sc.Dialer.Proxy = http.ProxyURL(uProxy)
		} else {
			log.Warnln(log.Wss, sc.Id, "bad proxy url", pUrl, err)
		}
	}
	sc.Id = text.GetString(sc.Ctx, Id)
	sc.wssUrl = text.GetString(sc.Ctx, WssUrl)
	sc.Keepalive = text.GetBool(sc.Ctx, Keepalive)
	sc.Timeout = time.Duration(text.GetInt64(sc.Ctx, Timeout))
	if sc.Timeout <= 0 {
		sc.Timeout = 10
	}
	sc.Dialer.HandshakeTimeout = sc.Timeout * time.Second
	sc.MsgLen = text.GetInt64(sc.Ctx, MsgLen)
	sc.MsgQueue = make(chan []byte, sc.MsgLen)
	sc.done = make(chan struct{})
}

func (sc *WssSocket) Connent() error {
	c, _, err := sc.Dialer.DialContext(sc.Ctx, sc.wssUrl, nil)
	ti := time.Now().Unix()
	if err != nil {
		log.Errorln(log.Wss, sc.Id, sc.wssUrl, "wss connect create error", err)
		return err
	}
	log.Infoln(log.Wss, sc.Id, sc.wssUrl, "wss connect create success at time", ti)
	sc.Connect = c
	atomic.StoreInt32(&sc.status, StatusOpened)
	atomic.StoreInt64(&sc.lastResponse, ti)
	sc.Connect.SetPongHandler(func(string) error {
		atomic.StoreInt64(&sc.lastResponse, time.Now().Unix())
		return nil
	})
	return nil
}

func (sc *WssSocket) Messages() <-chan []byte {
	return sc.MsgQueue
}

func (sc *WssSocket) Status() int32 {
	return atomic.LoadInt32(&sc.status)
}

// LastResponse is the unix second of the last inbound frame
func (sc *WssSocket) LastResponse() int64 {
	return atomic.LoadInt64(&sc.lastResponse)
}

func (sc *WssSocket) Send(msg []byte) error {
	if sc.Status() != StatusOpened {
		return ErrSocketClosed
	}
	log.Debugln(log.Wss, sc.Id, "SendMsg:", string(msg))
	sc.wmu.Lock()
	defer sc.wmu.Unlock()
	return sc.Connect.WriteMessage(websocket.TextMessage, msg)
}

// ReadMsg pumps frames into MsgQueue until the socket fails, then closes MsgQueue
func (sc *WssSocket) ReadMsg() {
	defer close(sc.MsgQueue)
	for {
		msgType, message, err := sc.Connect.ReadMessage()
		if err != nil {
			select {
			case <-sc.done:
				sc.setErr(ErrSocketClosed)
			default:
				log.Errorln(log.Wss, sc.Id, "wss ReadMsg error:", err)
				sc.setErr(err)
			}
			_ = sc.Close()
			return
		}
		atomic.StoreInt64(&sc.lastResponse, time.Now().Unix())
		switch msgType {
		case websocket.TextMessage, websocket.BinaryMessage:
			select {
			case sc.MsgQueue <- message:
			case <-sc.done:
				sc.setErr(ErrSocketClosed)
				return
			}
		default:
			log.Warnln(log.Wss, sc.Id, "unkown msgType", msgType)
		}
	}
}

func (sc *WssSocket) watch() {
	select {
	case <-sc.Ctx.Done():
		log.Warnln(log.Wss, sc.Id, "WssSocket closed by done")
		_ = sc.Close()
	case <-sc.done:
	}
}

// PingPong sends websocket control pings every Timeout seconds
func (sc *WssSocket) PingPong() {
	timeout := sc.Timeout * time.Second
	tr := time.NewTicker(timeout)
	defer tr.Stop()
	for {
		select {
		case <-sc.done:
			return
		case <-tr.C:
			sc.wmu.Lock()
			err := sc.Connect.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(timeout))
			sc.wmu.Unlock()
			if err != nil {
				log.Errorln(log.Wss, sc.Id, "ping err", err)
				_ = sc.Close()
				return
			}
		}
	}
}

func (sc *WssSocket) Err() error {
	sc.emu.Lock()
	defer sc.emu.Unlock()
	return sc.err
}

func (sc *WssSocket) setErr(err error) {
	sc.emu.Lock()
	if sc.err == nil {
		sc.err = err
	}
	sc.emu.Unlock()
}

// Close is safe to call more than once
func (sc *WssSocket) Close() error {
	var err error
	sc.closeOnce.Do(func() {
		atomic.StoreInt32(&sc.status, StatusClosed)
		close(sc.done)
		sc.wmu.Lock()
		_ = sc.Connect.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		sc.wmu.Unlock()
		err = sc.Connect.Close()
	})
	return err
}
