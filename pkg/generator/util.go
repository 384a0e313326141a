package generator

// int32Ptr は SDK の設定フィールドが要求するポインタ型への変換です。
func int32Ptr(v int32) *int32 {
	return &v
}

func float32Ptr(v float32) *float32 {
	return &v
}
