// Package queue contains the background consumer that listens to the
// workshop.part_status queue and writes structured lines to
// logs/workshop.log.
package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const partStatusQueueName = "workshop.part_status"

// BrokerURL returns the configured broker address, or "" when no broker
// is configured. With no broker the publisher and consumer both stay
// inactive, which is the normal mode for a single-machine install.
func BrokerURL() string {
    if url := os.Getenv("RABBITMQ_URL"); url != "" {
        return url
    }
    return os.Getenv("AMQP_URL")
}

// StartPartStatusConsumer connects to the broker, declares the durable
// workshop.part_status queue, and starts consuming messages. Each
// message is appended to logs/workshop.log in a single-line format. The
// function runs a reconnect loop; processing errors are logged and the
// offending message rejected so the server keeps operating.
func StartPartStatusConsumer() error {
    url := BrokerURL()
    if url == "" {
        return errors.New("no broker configured")
    }

    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("part-status-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn); err != nil {
            log.Printf("part-status-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("part-status-consumer: set QoS failed: %v", err)
    }

    _, err = ch.QueueDeclare(partStatusQueueName, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(partStatusQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body); err != nil {
            log.Printf("part-status-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
    var ev PartStatusChangedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    // Ensure logs directory exists
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "workshop.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    line := fmt.Sprintf("[%s] Part status changed | ot=%s | part=%s \"%s\" | qty=%d | %s -> %s | by=%s\n",
        ev.ChangedAt, ev.OrderNumber, ev.PartNumber, ev.PartName, ev.Quantity, ev.OldStatus, ev.NewStatus, ev.ChangedBy)

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
