package zap

import (
	"context"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// EnvironmentErrorNotificationsOptions names the variables that switch on SNS
// error notifications for a deploy run.
type EnvironmentErrorNotificationsOptions struct {
	TopicARNEnvVars []string
	SubjectEnvVars  []string
	// Lookup reads a variable; nil means os.LookupEnv.
	Lookup func(string) (string, bool)
}

// DefaultEnvironmentErrorNotifications reads SSRSTACK_ERROR_TOPIC_ARN (or the
// shared ERROR_NOTIFICATIONS_TOPIC_ARN) and SSRSTACK_ERROR_SUBJECT.
func DefaultEnvironmentErrorNotifications() EnvironmentErrorNotificationsOptions {
	return EnvironmentErrorNotificationsOptions{
		TopicARNEnvVars: []string{"SSRSTACK_ERROR_TOPIC_ARN", "ERROR_NOTIFICATIONS_TOPIC_ARN"},
		SubjectEnvVars:  []string{"SSRSTACK_ERROR_SUBJECT"},
	}
}

func (o EnvironmentErrorNotificationsOptions) first(keys []string) string {
	lookup := o.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range keys {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		if v, ok := lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// WithEnvironmentErrorNotifications attaches an SNS notifier when a topic ARN
// is configured. Without one, AWS configuration is never loaded.
func WithEnvironmentErrorNotifications(ctx context.Context, env EnvironmentErrorNotificationsOptions) Option {
	return func(opts *loggerOptions) {
		topicARN := env.first(env.TopicARNEnvVars)
		if topicARN == "" {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			opts.initErr = err
			return
		}
		opts.notifier = NewSNSNotifier(sns.NewFromConfig(awsCfg), topicARN, SNSNotifierOptions{
			Subject: env.first(env.SubjectEnvVars),
		})
	}
}
