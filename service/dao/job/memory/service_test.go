package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/service/dao"
)

func TestService_List(t *testing.T) {
	ctx := context.Background()
	srv := New()
	jobs := []*job.Job{
		{ID: "j1", TaskID: "t1", InfrastructureID: "i1", State: job.StateRunning},
		{ID: "j2", TaskID: "t1", InfrastructureID: "i1", State: job.StateDone},
		{ID: "j3", TaskID: "t2", InfrastructureID: "i2", State: job.StateFailed},
	}
	for _, aJob := range jobs {
		assert.NoError(t, srv.Save(ctx, aJob))
	}

	testCases := []struct {
		description string
		parameters  []*dao.Parameter
		expected    int
	}{
		{description: "all", expected: 3},
		{description: "by state", parameters: []*dao.Parameter{dao.NewParameter("State", "running")}, expected: 1},
		{description: "terminal states", parameters: []*dao.Parameter{dao.NewParameter("State", "done", "failed", "canceled")}, expected: 2},
		{description: "by task", parameters: []*dao.Parameter{dao.NewParameter("TaskID", "t1")}, expected: 2},
		{description: "by infrastructure and state", parameters: []*dao.Parameter{dao.NewParameter("InfrastructureID", "i1"), dao.NewParameter("State", "done")}, expected: 1},
	}
	for _, testCase := range testCases {
		actual, err := srv.List(ctx, testCase.parameters...)
		assert.NoError(t, err, testCase.description)
		assert.Len(t, actual, testCase.expected, testCase.description)
	}

	loaded, err := srv.Load(ctx, "j1")
	assert.NoError(t, err)
	loaded.State = job.StateCanceled
	again, _ := srv.Load(ctx, "j1")
	assert.Equal(t, job.StateRunning, again.State)
}
