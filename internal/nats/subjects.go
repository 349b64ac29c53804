package nats

// NATS Subject 常量定义

const (
	// SubjectLogicUpstream Access -> Logic 上行事件
	SubjectLogicUpstream = "mahjong.logic.upstream"

	// SubjectAccessDownstreamPrefix Logic -> Access 下行事件前缀
	// 完整格式: mahjong.access.{node_id}.downstream
	SubjectAccessDownstreamPrefix = "mahjong.access."
	SubjectAccessDownstreamSuffix = ".downstream"

	// SubjectAccessBroadcast Logic -> All Access 广播事件
	SubjectAccessBroadcast = "mahjong.access.broadcast"

	// QueueGroupLogic Logic 服务队列组名称
	QueueGroupLogic = "mahjong-logic"
)

// BuildAccessDownstreamSubject 构建 Access 节点下行 Subject
func BuildAccessDownstreamSubject(nodeID string) string {
	return SubjectAccessDownstreamPrefix + nodeID + SubjectAccessDownstreamSuffix
}
