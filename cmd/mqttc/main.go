package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/octasense/mqttengine"
	"github.com/octasense/mqttengine/packet"
	"github.com/octasense/mqttengine/transport"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:1883", "broker TCP address")
	clientID := flag.String("client-id", "mqttc-demo", "MQTT client id")
	topic := flag.String("topic", "mqttc/demo", "topic to publish and subscribe to")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	nc, err := transport.DialTCP(ctx, *addr)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer nc.Close()

	cfg := mqttengine.DefaultConfig(*clientID)
	engine, err := mqttengine.New(cfg, mqttengine.Handlers{
		Send: transport.TCPSend(nc),
		OnConnection: func(connected bool, code packet.ReasonCode) {
			log.Printf("connection changed: connected=%v code=%v", connected, code)
		},
		OnMessage: func(msg mqttengine.Message) {
			log.Printf("message: topic=%s payload=%q", msg.Topic, msg.Payload)
		},
		OnSubscribeAck: func(packetID uint16, returnCodes []uint8) {
			log.Printf("subscribe acked: id=%d codes=%v", packetID, returnCodes)
		},
	})
	if err != nil {
		log.Fatalf("new engine: %v", err)
	}

	conn := transport.Serve(nc, engine)
	defer conn.Close()

	if err := engine.Connect(); err != nil {
		log.Fatalf("connect: %v", err)
	}

	group.Go(func() error {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		subscribed := false
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if !engine.IsConnected() {
					continue
				}
				if !subscribed {
					if _, err := engine.Subscribe(*topic); err != nil {
						log.Printf("subscribe: %v", err)
					}
					subscribed = true
				}
				payload := []byte(time.Now().Format(time.RFC3339))
				if err := engine.Publish(*topic, payload, false); err != nil {
					log.Printf("publish: %v", err)
				}
			}
		}
	})

	group.Go(func() error {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-ticker.C:
				engine.Timer(uint32(now.Sub(last).Milliseconds()))
				last = now
			}
		}
	})

	group.Go(func() error {
		defer cancel()
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-sig:
			return fmt.Errorf("got signal: %s", s)
		}
	})

	if err := group.Wait(); err != nil {
		_ = engine.Disconnect()
		log.Printf("exiting: %v", err)
	}
}
