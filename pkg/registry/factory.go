package registry

// NewRegistry 创建一个新的注册表
func NewRegistry[T RegistryItem]() Registry[T] {
	return NewBaseRegistry[T]()
}

// MustRegister 注册项目，失败时 panic；用于包初始化阶段的静态注册
func MustRegister[T RegistryItem](r Registry[T], items ...T) {
	for _, item := range items {
		if err := r.Register(item); err != nil {
			panic(err)
		}
	}
}
