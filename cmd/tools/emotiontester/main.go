package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	analysis "github.com/tometh/soulvoice/internal/analysis/emotion"
	"github.com/tometh/soulvoice/internal/config"
	emotionmodel "github.com/tometh/soulvoice/internal/model/emotion"
	mappingstore "github.com/tometh/soulvoice/internal/store/mapping"
)

// 本地分类器的命令行试验台。从参数或标准输入逐行读取文本，
// 输出分类结果，用于在不起服务的情况下调整关键词表。
func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	text := flag.String("text", "", "待分析文本，留空则从标准输入逐行读取")
	asJSON := flag.Bool("json", false, "以 JSON 输出完整分析结果")
	useCache := flag.Bool("cache", true, "是否加载持久化的映射快照")

	flag.Parse()

	mapping := emotionmodel.Default()
	if *useCache {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("配置加载失败: %v", err)
		}
		store := mappingstore.NewStore(mappingstore.NewFileSnapshot(cfg.Mapping.CachePath))
		store.Bootstrap()
		mapping = store.Get()
	}

	if strings.TrimSpace(*text) != "" {
		report(*text, mapping, *asJSON)
		return
	}

	fmt.Fprintln(os.Stderr, "逐行输入待分析文本，Ctrl-D 结束：")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		report(line, mapping, *asJSON)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("读取输入失败: %v", err)
	}
}

func report(text string, mapping emotionmodel.Mapping, asJSON bool) {
	result := analysis.Classify(text, mapping)

	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("序列化结果失败: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Printf("情绪: %s  置信度: %.2f\n", result.Emotion, result.Confidence)
	for i, suggestion := range result.Suggestions {
		fmt.Printf("  %d. %s\n", i+1, suggestion)
	}
}
