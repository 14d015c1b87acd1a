package platform

import "sort"

// Registry 按平台名索引已配置的客户端实例
// 启动时由 wire 显式构建注入，不使用包级单例
type Registry struct {
	clients map[string]Client
}

func NewRegistry(clients ...Client) *Registry {
	m := make(map[string]Client, len(clients))
	for _, c := range clients {
		m[c.Platform()] = c
	}
	return &Registry{clients: m}
}

// Get 获取平台客户端
func (r *Registry) Get(platform string) (Client, bool) {
	c, ok := r.clients[platform]
	return c, ok
}

// Platforms 返回已接入的平台名列表，字典序
func (r *Registry) Platforms() []string {
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
