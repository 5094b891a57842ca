// Package gridgate turns stored infrastructure parameters into authenticated
// sessions and binds tasks to live job submission handles.
//
// Sessions are built per infrastructure kind (wsgram, gatekeeper, wms, occi,
// rocci, ssh); grid kinds fetch a remote proxy credential, ssh uses plain or
// secret backed user/password or scy credentials. Job submission is provided
// by pluggable backends, ssh being built in:
//
//	srv, _ := gridgate.New(ctx)
//	_ = srv.Infrastructures().Save(ctx, infrastructure)
//	handle, _ := srv.JobServices().Create(ctx, &infra.Task{ID: "t1", InfrastructureID: infrastructure.ID})
//	submitted, _ := handle.Submit(ctx, &job.Description{Executable: "hostname"})
//	done, _ := handle.Wait(ctx, submitted.ID)
//
// The same operations are exposed as the "infra/job" action service.
package gridgate
