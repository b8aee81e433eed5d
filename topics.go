// topics.go
package main

import (
	"fmt"
	"strings"
)

// topicDelimiter joins topics into the single string every worker expects.
const topicDelimiter = ","

// TopicSet is an ordered, deduplicated set of topic strings. Topics
// containing the delimiter are rejected at construction rather than escaped:
// the worker contract is exactly "split on comma" and every worker would
// otherwise need to agree on an unescape rule.
type TopicSet struct {
	topics []string
}

// NewTopicSet normalizes raw topics into a TopicSet: whitespace is trimmed,
// empty strings are dropped, duplicates keep their first position.
func NewTopicSet(raw []string) (TopicSet, error) {
	seen := make(map[string]bool, len(raw))
	topics := make([]string, 0, len(raw))
	for _, topic := range raw {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		if strings.Contains(topic, topicDelimiter) {
			return TopicSet{}, &ValidationError{
				Message: fmt.Sprintf("topic %q contains the delimiter %q", topic, topicDelimiter),
			}
		}
		if seen[topic] {
			continue
		}
		seen[topic] = true
		topics = append(topics, topic)
	}
	return TopicSet{topics: topics}, nil
}

// Join serializes the set for the worker boundary.
func (ts TopicSet) Join() string {
	return strings.Join(ts.topics, topicDelimiter)
}

// Topics returns the topics in order.
func (ts TopicSet) Topics() []string {
	topics := make([]string, len(ts.topics))
	copy(topics, ts.topics)
	return topics
}

// Len returns the number of topics.
func (ts TopicSet) Len() int {
	return len(ts.topics)
}
