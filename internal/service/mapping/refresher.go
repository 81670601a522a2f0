package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/tometh/soulvoice/internal/model/emotion"
	"github.com/tometh/soulvoice/internal/provider"
	mappingstore "github.com/tometh/soulvoice/internal/store/mapping"
)

const defaultInterval = 6 * time.Hour

// Refresher 在后台重建情绪映射的四张表。它是映射仓库唯一的写入方，
// 永远不会在分类请求路径上被同步调用；任何一步失败都整体放弃本轮
// 刷新，旧映射保持生效。
type Refresher struct {
	store      *mappingstore.Store
	generators []provider.TextGenerator
	interval   time.Duration
	trigger    chan struct{}
}

// NewRefresher 创建映射刷新器。interval 非正时使用默认周期。
func NewRefresher(store *mappingstore.Store, generators []provider.TextGenerator, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		store:      store,
		generators: generators,
		interval:   interval,
		trigger:    make(chan struct{}, 1),
	}
}

// Run 驱动刷新循环直到 ctx 取消：启动后先做一次刷新，之后按周期
// 或手动触发执行。刷新彼此串行，保证单写者纪律。
func (r *Refresher) Run(ctx context.Context) {
	r.Refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Refresh(ctx)
		case <-r.trigger:
			r.Refresh(ctx)
		}
	}
}

// RefreshNow 请求尽快执行一次刷新。多次触发会被合并，调用不阻塞。
func (r *Refresher) RefreshNow() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Refresh 执行一轮完整的映射重建并在校验通过时替换仓库内容。
// 失败只上报到日志，从不抛给分类调用方。
func (r *Refresher) Refresh(ctx context.Context) {
	if len(r.generators) == 0 {
		log.Println("[refresher] no generation providers configured, skipping refresh")
		return
	}

	candidate, err := r.buildCandidate(ctx)
	if err != nil {
		log.Printf("[refresher] refresh aborted: %v", err)
		return
	}

	if !r.store.TrySet(*candidate) {
		log.Println("[refresher] regenerated mapping failed validation, keeping previous mapping")
		return
	}
	log.Println("[refresher] mapping refreshed from remote providers")
}

// buildCandidate 按两阶段协议重建候选映射：先并发生成 emotionMap 与
// keywordMap，两者都成功后再基于情绪集合并发生成建议表与总结表。
func (r *Refresher) buildCandidate(ctx context.Context) (*emotion.Mapping, error) {
	var (
		wg         sync.WaitGroup
		emotionMap map[string]string
		keywordMap map[string]string
		emotionErr error
		keywordErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		emotionMap, emotionErr = r.generateStringMap(ctx, emotionMapPrompt)
	}()
	go func() {
		defer wg.Done()
		keywordMap, keywordErr = r.generateStringMap(ctx, keywordMapPrompt)
	}()
	wg.Wait()

	if emotionErr != nil {
		return nil, fmt.Errorf("emotion map: %w", emotionErr)
	}
	if keywordErr != nil {
		return nil, fmt.Errorf("keyword map: %w", keywordErr)
	}

	emotions := make([]string, 0, len(emotionMap))
	for id := range emotionMap {
		emotions = append(emotions, id)
	}

	var (
		suggestionMap map[string][]string
		summaryMap    map[string]string
		suggestionErr error
		summaryErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		suggestionMap, suggestionErr = r.generateListMap(ctx, suggestionPrompt(emotions))
	}()
	go func() {
		defer wg.Done()
		summaryMap, summaryErr = r.generateStringMap(ctx, summaryPrompt(emotions))
	}()
	wg.Wait()

	if suggestionErr != nil {
		return nil, fmt.Errorf("suggestion map: %w", suggestionErr)
	}
	if summaryErr != nil {
		return nil, fmt.Errorf("summary map: %w", summaryErr)
	}

	return &emotion.Mapping{
		EmotionMap:    emotionMap,
		KeywordMap:    keywordMap,
		SuggestionMap: suggestionMap,
		SummaryMap:    summaryMap,
	}, nil
}

func (r *Refresher) generateStringMap(ctx context.Context, prompt string) (map[string]string, error) {
	raw, err := r.generateObject(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode string map: %w", err)
	}
	return out, nil
}

func (r *Refresher) generateListMap(ctx context.Context, prompt string) (map[string][]string, error) {
	raw, err := r.generateObject(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var out map[string][]string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode list map: %w", err)
	}
	return out, nil
}

// generateObject 依次尝试各提供方，取第一个返回合法 JSON 对象的结果。
func (r *Refresher) generateObject(ctx context.Context, prompt string) (json.RawMessage, error) {
	var lastFail *provider.Failure
	for _, gen := range r.generators {
		text, fail := gen.Generate(ctx, refreshSystemPrompt, prompt)
		if fail != nil {
			log.Printf("[refresher] provider %s failed: %s", gen.Name(), fail)
			lastFail = fail
			continue
		}
		raw, ok := provider.ExtractJSONObject(text)
		if !ok {
			log.Printf("[refresher] provider %s returned no json object", gen.Name())
			lastFail = &provider.Failure{Kind: provider.FailureSchema, Detail: "no json object in output"}
			continue
		}
		return raw, nil
	}
	return nil, fmt.Errorf("all providers failed: %s", lastFail)
}

const refreshSystemPrompt = "你是一个情绪词表生成器。只输出一个 JSON 对象，不要输出任何多余文本。"

const emotionMapPrompt = "请生成一个情绪英文到中文的映射，格式为JSON对象，key为英文情绪名，value为对应的中文翻译。包括：happiness, sadness, anger, fear, surprise, neutral, disgust, anxiety 等基础情绪。"

const keywordMapPrompt = "请生成一个中文情绪关键词到英文情绪的映射，格式为JSON对象。key为中文情绪词，value为对应的英文情绪分类（happiness, sadness, anger, fear, surprise, neutral, disgust, anxiety）。每个情绪分类至少包含5个常用的中文情绪词。"

func suggestionPrompt(emotions []string) string {
	return fmt.Sprintf("请为以下每种情绪生成3条温暖、专业的心理安抚建议语。每条建议应该体现同理心、专业性和支持性。情绪列表：%s。输出格式为JSON对象，key为情绪英文名，value为建议语数组。", strings.Join(emotions, ", "))
}

func summaryPrompt(emotions []string) string {
	return fmt.Sprintf("请为以下每种情绪生成一段精准的心理分析总结，总结应该简洁专业，体现对该情绪状态的深入理解。情绪列表：%s。输出格式为JSON对象，key为情绪英文名，value为分析总结。", strings.Join(emotions, ", "))
}
