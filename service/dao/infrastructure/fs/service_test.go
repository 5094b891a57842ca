package fs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv, err := New(ctx, "mem://localhost/gridgate/infrastructures")
	if !assert.NoError(t, err) {
		return
	}
	disabled := false
	infrastructures := []*infra.Infrastructure{
		infra.NewInfrastructure("ssh-1", infra.NewParameter("type", "ssh"), infra.NewParameter("jobservice", "ssh://gridui:22")),
		{ID: "wms-1", Name: "gridit WMS", Enabled: &disabled, Parameters: infra.Parameters{
			infra.NewParameter("jobservice", "wms://wms.ct.infn.it:7443/glite_wms_wmproxy_server"),
			infra.NewParameter("proxyurl", "https://proxy/x509"),
		}},
	}
	for _, infrastructure := range infrastructures {
		assert.NoError(t, srv.Save(ctx, infrastructure))
	}
	assert.True(t, errors.Is(srv.Save(ctx, nil), dao.ErrNilEntity))
	assert.True(t, errors.Is(srv.Save(ctx, &infra.Infrastructure{}), dao.ErrInvalidID))

	loaded, err := srv.Load(ctx, "wms-1")
	if assert.NoError(t, err) {
		assert.Equal(t, "gridit WMS", loaded.Name)
		assert.False(t, loaded.IsEnabled())
		assert.Equal(t, "https://proxy/x509", loaded.Parameters.Value("proxyurl", ""))
	}

	all, err := srv.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	wms, err := srv.List(ctx, dao.NewParameter("Kind", "wms"))
	assert.NoError(t, err)
	if assert.Len(t, wms, 1) {
		assert.Equal(t, "wms-1", wms[0].ID)
	}

	assert.NoError(t, srv.Delete(ctx, "ssh-1"))
	_, err = srv.Load(ctx, "ssh-1")
	assert.True(t, errors.Is(err, dao.ErrNotFound))
	assert.True(t, errors.Is(srv.Delete(ctx, "ssh-1"), dao.ErrNotFound))
}
