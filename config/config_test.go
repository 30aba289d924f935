package config

import "testing"

func TestConfig_Verify(t *testing.T) {
	t.Run("empty config passes", func(t *testing.T) {
		c := &Config{}
		if err := c.Verify(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("bad request timeout", func(t *testing.T) {
		c := &Config{RequestTimeout: "fast"}
		if err := c.Verify(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("bad retry delay", func(t *testing.T) {
		c := &Config{Retry: Retry{InitialDelay: "soon"}}
		if err := c.Verify(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("negative retries", func(t *testing.T) {
		c := &Config{Retry: Retry{MaxRetries: -1}}
		if err := c.Verify(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown storage supplier", func(t *testing.T) {
		c := &Config{StorageEnabled: true, StorageSupplier: "s3"}
		if err := c.Verify(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("ali oss with expiry", func(t *testing.T) {
		c := &Config{StorageEnabled: true, StorageSupplier: "ali_oss", URLExpires: "1h"}
		if err := c.Verify(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestInitFromYaml(t *testing.T) {
	initFromYaml([]byte(`
api_key: test-key
base_url: https://api.segmind.com/v1
request_timeout: 6m
log_level: debug
retry:
  max_retries: 3
  initial_delay: 500ms
`))
	if GConfig.APIKey != "test-key" {
		t.Fatalf("api_key = %s", GConfig.APIKey)
	}
	if GConfig.Retry.MaxRetries != 3 {
		t.Fatalf("max_retries = %d", GConfig.Retry.MaxRetries)
	}
	if GConfig.Timeout().Minutes() != 6 {
		t.Fatalf("timeout = %v", GConfig.Timeout())
	}
	if err := GConfig.Verify(); err != nil {
		t.Fatal(err)
	}
}
