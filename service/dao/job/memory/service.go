package memory

import (
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/service/dao"
	"github.com/viant/gridgate/service/dao/criteria"
	"github.com/viant/gridgate/service/dao/store"
)

// Service keeps jobs in memory, handing out copies so callers never race with running jobs
type Service struct {
	*store.MemoryStore[string, job.Job]
}

var _ dao.Service[string, job.Job] = (*Service)(nil)

// New creates an in-memory job store; List filters by State, TaskID or InfrastructureID
func New() *Service {
	return &Service{MemoryStore: store.NewMemoryStore[string, job.Job](
		func(j *job.Job) string { return j.ID },
		func(j *job.Job, parameters []*dao.Parameter) bool {
			return criteria.Match(map[string]string{
				"State":            string(j.State),
				"TaskID":           j.TaskID,
				"InfrastructureID": j.InfrastructureID,
			}, parameters)
		},
	).WithCopier((*job.Job).Clone)}
}
