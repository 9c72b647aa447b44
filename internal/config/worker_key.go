package config

type WorkerKeyStruct struct {
	GradebookRecomputeQueue string
}

var WorkerKey = &WorkerKeyStruct{
	GradebookRecomputeQueue: "gradebook_recompute_queue",
}
