package common

import (
	"errors"
	"fmt"
	"testing"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"no such key", fmt.Errorf("get: %w", &s3types.NoSuchKey{}), true},
		{"api not found", &smithy.GenericAPIError{Code: "NotFound"}, true},
		{"api other", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsNotFound(c.err); got != c.want {
				t.Fatalf("IsNotFound(%v) = %v; want %v", c.err, got, c.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	s := &S3{prefix: "summaries"}
	if got := s.Key("run-1/summary.txt"); got != "summaries/run-1/summary.txt" {
		t.Fatalf("Key = %q", got)
	}
	if got := (&S3{}).Key("a"); got != "a" {
		t.Fatalf("Key without prefix = %q", got)
	}
}
