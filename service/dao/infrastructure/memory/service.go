package memory

import (
	"context"

	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/service/dao"
	"github.com/viant/gridgate/service/dao/criteria"
	"github.com/viant/gridgate/service/dao/store"
)

// Service keeps infrastructures in memory
type Service struct {
	*store.MemoryStore[string, infra.Infrastructure]
}

var _ dao.Service[string, infra.Infrastructure] = (*Service)(nil)

// New creates an in-memory infrastructure store
func New(infrastructures ...*infra.Infrastructure) *Service {
	ret := &Service{MemoryStore: store.NewMemoryStore[string, infra.Infrastructure](
		func(i *infra.Infrastructure) string { return i.ID },
		matchInfrastructure,
	)}
	ctx := context.Background()
	for _, infrastructure := range infrastructures {
		_ = ret.Save(ctx, infrastructure)
	}
	return ret
}

func matchInfrastructure(i *infra.Infrastructure, parameters []*dao.Parameter) bool {
	kind, _ := i.Kind()
	return criteria.Match(map[string]string{"ID": i.ID, "Kind": kind.String()}, parameters)
}
