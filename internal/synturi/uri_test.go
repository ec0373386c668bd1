package synturi

import "testing"

func TestParseFile(t *testing.T) {
	u, err := Parse("file:///data/backups")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Scheme != File || u.Root != "/data/backups" || u.Encrypted {
		t.Errorf("got %+v", u)
	}
}

func TestParseS3WithPrefix(t *testing.T) {
	u, err := Parse("s3://my-bucket/some/prefix")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Scheme != S3 || u.Bucket != "my-bucket" || u.Prefix != "some/prefix" {
		t.Errorf("got %+v", u)
	}
}

func TestParseS3EmptyPrefix(t *testing.T) {
	u, err := Parse("s3://my-bucket")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Bucket != "my-bucket" || u.Prefix != "" {
		t.Errorf("got %+v", u)
	}
}

func TestParseEncryptedPrefix(t *testing.T) {
	u, err := Parse("enc+s3://my-bucket/prefix")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !u.Encrypted || u.Scheme != S3 {
		t.Errorf("got %+v", u)
	}
}

func TestParseUnknownScheme(t *testing.T) {
	if _, err := Parse("ftp://example.com"); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
}

func TestParseMissingBucket(t *testing.T) {
	if _, err := Parse("s3://"); err == nil {
		t.Fatal("expected error for missing bucket")
	}
}
