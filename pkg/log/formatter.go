package log

// silentFormatter 아무것도 출력하지 않는 포맷터입니다.
// 기본 출력을 io.Discard로 돌린 상태에서도 logrus가 포맷팅 비용을 치르지 않도록 합니다.
// 실제 포맷팅은 hook에서 수행합니다.
type silentFormatter struct{}

// Format 항상 nil을 반환합니다.
func (f *silentFormatter) Format(_ *Entry) ([]byte, error) {
	return nil, nil
}
