package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx    map[string][]*net.MX
	hosts map[string][]string
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if v, ok := f.mx[name]; ok {
		return v, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if v, ok := f.hosts[host]; ok {
		return v, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainResolves(t *testing.T) {
	r := fakeResolver{
		mx:    map[string][]*net.MX{"gmail.com": {{Host: "mx.gmail.com."}}},
		hosts: map[string][]string{"studio.dev": {"10.0.0.1"}},
	}
	ctx := context.Background()

	assert.True(t, EmailDomainResolves(ctx, r, "ana@gmail.com"))
	assert.True(t, EmailDomainResolves(ctx, r, "ana@studio.dev"))
	assert.False(t, EmailDomainResolves(ctx, r, "ana@nowhere.invalid"))
	assert.False(t, EmailDomainResolves(ctx, r, "ana@"))
	assert.False(t, EmailDomainResolves(ctx, r, "semarroba"))
}
