package article

const (
	msgInvalidID      = "无效的文章ID格式"
	msgNotFound       = "文章不存在"
	msgRequiredFields = "标题和内容不能为空"
	msgInvalidStatus  = "无效的文章状态"
)

// ArticleDTO is the body of create and update requests.
type ArticleDTO struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Summary    string   `json:"summary"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"coverImage"`
	Status     string   `json:"status"`
}
