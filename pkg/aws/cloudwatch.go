package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// DefaultLogGroup is the CloudWatch log group used when none is configured.
const DefaultLogGroup = "/storefront/service"

const (
	logFlushInterval  = 2 * time.Second
	maxBatchEvents    = 1000
	maxBufferedEvents = 10000
)

// logsAPI is the part of *cloudwatchlogs.Client the log sink uses.
type logsAPI interface {
	CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutRetentionPolicy(ctx context.Context, params *cloudwatchlogs.PutRetentionPolicyInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// CloudWatchLogsClient ships log lines to a CloudWatch Logs stream and
// implements io.Writer so it can back a zap core. Write only buffers; a
// background goroutine sends batches every flush interval, or sooner once a
// full batch is pending. Call Close on shutdown to send what is left.
type CloudWatchLogsClient struct {
	client        logsAPI
	logGroupName  string
	logStreamName string

	mu      sync.Mutex
	buffer  []types.InputLogEvent
	dropped int

	sendMu        sync.Mutex
	sequenceToken *string

	flushCh   chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewCloudWatchLogsClient creates the log group (if missing) and a fresh
// stream named after serviceName, then starts shipping in the background.
func NewCloudWatchLogsClient(ctx context.Context, cfg sdkaws.Config, logGroupName, serviceName string) (*CloudWatchLogsClient, error) {
	if logGroupName == "" {
		logGroupName = DefaultLogGroup
	}

	client := cloudwatchlogs.NewFromConfig(cfg)
	logStreamName := fmt.Sprintf("%s-%d", serviceName, time.Now().Unix())

	if err := ensureLogGroup(ctx, client, logGroupName); err != nil {
		return nil, fmt.Errorf("failed to ensure log group: %w", err)
	}
	if _, err := client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  sdkaws.String(logGroupName),
		LogStreamName: sdkaws.String(logStreamName),
	}); err != nil {
		return nil, fmt.Errorf("failed to create log stream: %w", err)
	}
	return newCloudWatchLogsClient(client, logGroupName, logStreamName, logFlushInterval), nil
}

func newCloudWatchLogsClient(client logsAPI, logGroupName, logStreamName string, interval time.Duration) *CloudWatchLogsClient {
	c := &CloudWatchLogsClient{
		client:        client,
		logGroupName:  logGroupName,
		logStreamName: logStreamName,
		flushCh:       make(chan struct{}, 1),
		done:          make(chan struct{}),
		stopped:       make(chan struct{}),
	}
	go c.run(interval)
	return c
}

func ensureLogGroup(ctx context.Context, client logsAPI, logGroupName string) error {
	_, err := client.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: sdkaws.String(logGroupName),
	})
	if err != nil {
		var existsErr *types.ResourceAlreadyExistsException
		if !errors.As(err, &existsErr) {
			return err
		}
	}

	_, err = client.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
		LogGroupName:    sdkaws.String(logGroupName),
		RetentionInDays: sdkaws.Int32(30),
	})
	if err != nil {
		return fmt.Errorf("failed to set retention policy: %w", err)
	}
	return nil
}

// PutLogEvents sends log events to the stream.
func (c *CloudWatchLogsClient) PutLogEvents(ctx context.Context, events []types.InputLogEvent) error {
	if len(events) == 0 {
		return nil
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	output, err := c.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  sdkaws.String(c.logGroupName),
		LogStreamName: sdkaws.String(c.logStreamName),
		LogEvents:     events,
		SequenceToken: c.sequenceToken,
	})
	if err != nil {
		return fmt.Errorf("failed to put log events: %w", err)
	}
	c.sequenceToken = output.NextSequenceToken
	return nil
}

// Write queues p as one log event and never blocks on the network. Once
// maxBufferedEvents are pending, further lines are dropped and counted.
func (c *CloudWatchLogsClient) Write(p []byte) (int, error) {
	event := types.InputLogEvent{
		Message:   sdkaws.String(string(p)),
		Timestamp: sdkaws.Int64(time.Now().UnixMilli()),
	}

	c.mu.Lock()
	if len(c.buffer) >= maxBufferedEvents {
		c.dropped++
	} else {
		c.buffer = append(c.buffer, event)
	}
	full := len(c.buffer) >= maxBatchEvents
	c.mu.Unlock()

	if full {
		select {
		case c.flushCh <- struct{}{}:
		default:
		}
	}
	return len(p), nil
}

// Sync sends every buffered event.
func (c *CloudWatchLogsClient) Sync() error {
	return c.flush()
}

// Close stops the background shipper after a final flush. It is safe to
// call more than once.
func (c *CloudWatchLogsClient) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		<-c.stopped
	})
	return nil
}

func (c *CloudWatchLogsClient) run(interval time.Duration) {
	defer close(c.stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-c.flushCh:
		case <-c.done:
			_ = c.flush()
			return
		}
		_ = c.flush()
	}
}

// flush drains the buffer in batches of at most maxBatchEvents. Delivery
// failures are reported on stderr so logging keeps working without CloudWatch.
func (c *CloudWatchLogsClient) flush() error {
	c.mu.Lock()
	pending := c.buffer
	c.buffer = nil
	dropped := c.dropped
	c.dropped = 0
	c.mu.Unlock()

	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "CloudWatch: dropped %d log events\n", dropped)
	}

	var firstErr error
	for len(pending) > 0 {
		n := min(len(pending), maxBatchEvents)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := c.PutLogEvents(ctx, pending[:n])
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "CloudWatch write error: %v\n", err)
			if firstErr == nil {
				firstErr = err
			}
		}
		pending = pending[n:]
	}
	return firstErr
}
