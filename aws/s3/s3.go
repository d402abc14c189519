// Package s3 provides a csv.Opener which reads a listings extract from
// an S3 object, so ingestion can point straight at s3://bucket/key.
package s3

import (
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

// Opener opens one S3 object for reading.
type Opener struct {
	Bucket string
	Key    string
	Region string
}

// ParseURL parses an s3://bucket/key URL into an Opener.
func ParseURL(url, region string) (Opener, error) {
	rest := strings.TrimPrefix(url, "s3://")
	if rest == url {
		return Opener{}, errors.Errorf("not an s3 url: %q", url)
	}
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Opener{}, errors.Errorf("s3 url %q needs the form s3://bucket/key", url)
	}
	return Opener{Bucket: parts[0], Key: parts[1], Region: region}, nil
}

// Open fetches the object and returns its body.
func (o Opener) Open() (io.ReadCloser, error) {
	cfg := &aws.Config{}
	if o.Region != "" {
		cfg.Region = aws.String(o.Region)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating AWS session")
	}
	out, err := awss3.New(sess).GetObject(&awss3.GetObjectInput{
		Bucket: aws.String(o.Bucket),
		Key:    aws.String(o.Key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "getting object %s", o)
	}
	return out.Body, nil
}

func (o Opener) String() string {
	return "s3://" + o.Bucket + "/" + o.Key
}
