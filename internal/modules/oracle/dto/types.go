package dto

type OracleInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type GenerateInput struct {
	OracleName string
	PhotoPath  string
	Persona    string
	FilterID   string
}

type GeneratedTask struct {
	Title  string
	Detail string
	Points int
}

type GenerateOutput struct {
	OracleName      string
	Tasks           []GeneratedTask
	VisionImagePath string
}

type JudgeInput struct {
	OracleName      string
	BeforePhotoPath string
	AfterPhotoPath  string
	TaskTitles      []string
}

type JudgeOutput struct {
	OracleName string
	Passed     bool
	Confidence float64
	Remarks    string
}
