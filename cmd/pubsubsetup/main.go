package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/actors/pubsub/codec"
)

const usage = "usage: pubsubsetup PROJECTID,TOPIC1:SUBSCRIPTION11:SUBSCRIPTION12,TOPIC2:SUBSCRIPTION21\n" +
	"a subscription may restrict the resources it receives: SUBSCRIPTION=person+company"

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
}

func main() {
	flag.Usage = func() { fmt.Fprintln(flag.CommandLine.Output(), usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	projectID, topics, err := parseLayout(flag.Arg(0))
	if err != nil {
		log.WithError(err).Fatal("invalid layout")
	}

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.WithError(err).WithField("project-id", projectID).Fatal("unable to create pubsub client")
	}
	defer client.Close()

	for _, t := range topics {
		topic, err := client.CreateTopic(ctx, t.ID)
		if status.Code(err) == codes.AlreadyExists {
			topic = client.Topic(t.ID)
		} else if err != nil {
			log.WithError(err).WithField("topic", t.ID).Fatal("unable to create topic")
		}

		for _, sub := range t.Subscriptions {
			_, err := client.CreateSubscription(ctx, sub.ID, pubsub.SubscriptionConfig{
				Topic:  topic,
				Filter: sub.filter(),
			})
			if err != nil && status.Code(err) != codes.AlreadyExists {
				log.WithError(err).WithField("subscription", sub.ID).Fatal("unable to create subscription")
			}
			log.WithField("project-id", projectID).
				WithField("topic", t.ID).
				WithField("subscription", sub.ID).
				WithField("filter", sub.filter()).
				Info("subscription available")
		}
	}
}

type topicLayout struct {
	ID            string
	Subscriptions []subscriptionLayout
}

type subscriptionLayout struct {
	ID        string
	Resources []string
}

// filter returns the subscription filter on the resource attribute of the lifecycle events.
func (s subscriptionLayout) filter() string {
	if len(s.Resources) == 0 {
		return ""
	}
	clauses := make([]string, len(s.Resources))
	for i, r := range s.Resources {
		clauses[i] = fmt.Sprintf("attributes.%s = %q", codec.AttributeResource, r)
	}
	return strings.Join(clauses, " OR ")
}

func parseLayout(arg string) (string, []topicLayout, error) {
	items := strings.Split(strings.ReplaceAll(arg, " ", ""), ",")
	if items[0] == "" {
		return "", nil, errors.New("missing project id")
	}
	var topics []topicLayout
	for _, item := range items[1:] {
		parts := strings.Split(item, ":")
		if parts[0] == "" {
			return "", nil, fmt.Errorf("missing topic in [%s]", item)
		}
		t := topicLayout{ID: parts[0]}
		for _, s := range parts[1:] {
			id, resources, _ := strings.Cut(s, "=")
			if id == "" {
				return "", nil, fmt.Errorf("missing subscription in [%s]", item)
			}
			sub := subscriptionLayout{ID: id}
			if resources != "" {
				sub.Resources = strings.Split(resources, "+")
			}
			t.Subscriptions = append(t.Subscriptions, sub)
		}
		topics = append(topics, t)
	}
	return items[0], topics, nil
}
